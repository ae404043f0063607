package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
)

func TestDecrementStockNeverGoesNegative(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "Widget", "10", 2)

	_, err := e.products.DecrementStock(p.ID, 3)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, e.stock(t, p.ID))

	updated, err := e.products.DecrementStock(p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)

	_, err = e.products.DecrementStock(p.ID, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, e.stock(t, p.ID))
}

func TestIncrementStock(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "Widget", "10", 1)

	updated, err := e.products.IncrementStock(p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.StockQuantity)

	_, err = e.products.IncrementStock("missing", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePriceRejectsNegative(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	p := e.seedProduct(t, "Widget", "10", 2)

	_, err := e.products.ChangePrice(context.Background(), p.ID, mustDecimal(t, "-1"), admin.ID)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	// Fails fast: no audit entry, price untouched.
	entries, err := e.auditRepo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
	stored, err := e.productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(mustDecimal(t, "10")))
}

func TestChangePriceAuditsAndNotifiesClients(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	client := e.seedUser(t, domain.RoleClient)
	p := e.seedProduct(t, "Widget", "10", 2)

	_, err := e.products.ChangePrice(context.Background(), p.ID, mustDecimal(t, "15"), admin.ID)
	require.NoError(t, err)

	entries, err := e.auditRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditUpdatePrice, entries[0].Action)
	assert.Equal(t, admin.ID, entries[0].AdminID)
	assert.Equal(t, "10", entries[0].OldValue)
	assert.Equal(t, "15", entries[0].NewValue)

	assert.Len(t, e.notificationsOf(t, client.ID, domain.NotificationProductUpdated), 1)
	assert.Empty(t, e.notificationsOf(t, admin.ID, domain.NotificationProductUpdated))
}

func TestChangeStockAtThresholdRaisesAlert(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	p := e.seedProduct(t, "Widget", "10", 50)

	_, err := e.products.ChangeStock(context.Background(), p.ID, domain.ReorderThreshold, admin.ID)
	require.NoError(t, err)

	reorders, err := e.reorderRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, reorders, 1)
	assert.Equal(t, domain.ReorderThreshold, reorders[0].StockQuantity)

	alerts := e.notificationsOf(t, admin.ID, domain.NotificationLowStock)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Text, "(now: 5)")

	entries, err := e.auditRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditUpdateStock, entries[0].Action)
	assert.Equal(t, "50", entries[0].OldValue)
	assert.Equal(t, "5", entries[0].NewValue)
}

func TestChangeStockAboveThresholdStaysQuiet(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	p := e.seedProduct(t, "Widget", "10", 2)

	_, err := e.products.ChangeStock(context.Background(), p.ID, 40, admin.ID)
	require.NoError(t, err)

	reorders, err := e.reorderRepo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, reorders)
	assert.Empty(t, e.notificationsOf(t, admin.ID, domain.NotificationLowStock))
}

func TestChangeStockRejectsNegative(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	p := e.seedProduct(t, "Widget", "10", 2)

	_, err := e.products.ChangeStock(context.Background(), p.ID, -1, admin.ID)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 2, e.stock(t, p.ID))
}

func TestConcurrentWritersLoseNoStock(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	p := e.seedProduct(t, "Widget", "10", 100)
	newPrice := mustDecimal(t, "11")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := e.products.DecrementStock(p.ID, 1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := e.products.ChangePrice(context.Background(), p.ID, newPrice, admin.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Every decrement survives the interleaved price writes.
	assert.Equal(t, 80, e.stock(t, p.ID))
}

func TestCreateAudits(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)

	p, err := e.products.Create(admin.ID, "Gadget", mustDecimal(t, "3.99"), 7)
	require.NoError(t, err)

	stored, err := e.productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", stored.Name)

	entries, err := e.auditRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditCreate, entries[0].Action)
	assert.Equal(t, string(p.ID), entries[0].TargetID)
	assert.Empty(t, entries[0].OldValue)
	assert.Contains(t, entries[0].NewValue, "Gadget")
}

func TestDeleteAuditsAndNotifiesClients(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, domain.RoleAdmin)
	client := e.seedUser(t, domain.RoleClient)
	p := e.seedProduct(t, "Widget", "10", 2)

	require.NoError(t, e.products.DeleteByID(context.Background(), p.ID, admin.ID))

	_, err := e.productRepo.FindByID(p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	entries, err := e.auditRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditDelete, entries[0].Action)
	assert.Contains(t, entries[0].OldValue, "Widget")

	assert.Len(t, e.notificationsOf(t, client.ID, domain.NotificationProductUpdated), 1)

	err = e.products.DeleteByID(context.Background(), p.ID, admin.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
