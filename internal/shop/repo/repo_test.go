package repo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

func newStore(t *testing.T) *csvstore.Store {
	t.Helper()
	return csvstore.New(t.TempDir())
}

func TestOrderRoundTrip(t *testing.T) {
	r := NewOrderRepo(newStore(t))
	placed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	order := domain.Order{
		OrderID:   "o1",
		UserID:    "u1",
		OrderDate: placed,
		Lines: []domain.OrderLine{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.RequireFromString("0.50")},
		},
		TotalAmount: decimal.RequireFromString("20.48"),
		Status:      domain.OrderStatusPaid,
	}
	require.NoError(t, r.Append(order))

	got, err := r.FindByID("o1")
	require.NoError(t, err)
	assert.Equal(t, order.UserID, got.UserID)
	assert.True(t, got.OrderDate.Equal(placed))
	require.Len(t, got.Lines, 2)
	assert.Equal(t, domain.ProductID("p1"), got.Lines[0].ProductID)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, got.TotalAmount.Equal(order.TotalAmount))

	_, err = r.FindByID("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderFindByUserID(t *testing.T) {
	r := NewOrderRepo(newStore(t))
	for _, o := range []domain.Order{
		{OrderID: "o1", UserID: "alice", TotalAmount: decimal.Zero, Status: domain.OrderStatusPaid},
		{OrderID: "o2", UserID: "bob", TotalAmount: decimal.Zero, Status: domain.OrderStatusPaid},
		{OrderID: "o3", UserID: "alice", TotalAmount: decimal.Zero, Status: domain.OrderStatusPaid},
	} {
		require.NoError(t, r.Append(o))
	}

	got, err := r.FindByUserID("alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.OrderID("o1"), got[0].OrderID)
	assert.Equal(t, domain.OrderID("o3"), got[1].OrderID)
}

func TestNotificationMarkSeen(t *testing.T) {
	r := NewNotificationRepo(newStore(t))
	require.NoError(t, r.Append(domain.Notification{
		NotificationID: "n1",
		UserID:         "u1",
		Type:           domain.NotificationGeneric,
		Text:           "hello",
		Timestamp:      time.Now().UTC(),
	}))

	require.NoError(t, r.MarkSeen("n1"))
	notes, err := r.FindByUserID("u1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, notes[0].Seen)

	// Marking twice stays true.
	require.NoError(t, r.MarkSeen("n1"))
	notes, err = r.FindByUserID("u1")
	require.NoError(t, err)
	assert.True(t, notes[0].Seen)

	require.ErrorIs(t, r.MarkSeen("missing"), domain.ErrNotFound)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	r := NewUserRepo(newStore(t))
	require.NoError(t, r.Create(domain.User{ID: "u1", Email: "a@example.com", PasswordHash: "x", Role: domain.RoleClient}))

	err := r.Create(domain.User{ID: "u2", Email: "A@Example.COM", PasswordHash: "y", Role: domain.RoleClient})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := r.FindByEmail("A@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u1"), got.ID)
}

func TestProductDeleteByID(t *testing.T) {
	r := NewProductRepo(newStore(t))
	p := domain.Product{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("10"), StockQuantity: 3}
	require.NoError(t, r.Upsert(p))

	require.NoError(t, r.DeleteByID("p1"))
	_, err := r.FindByID("p1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, r.DeleteByID("p1"), domain.ErrNotFound)
}

func TestProductUpsertReplacesInPlace(t *testing.T) {
	r := NewProductRepo(newStore(t))
	require.NoError(t, r.Upsert(domain.Product{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("10"), StockQuantity: 3}))
	require.NoError(t, r.Upsert(domain.Product{ID: "p2", Name: "Gadget", Price: decimal.RequireFromString("4"), StockQuantity: 8}))
	require.NoError(t, r.Upsert(domain.Product{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("12.50"), StockQuantity: 3}))

	all, err := r.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.ProductID("p1"), all[0].ID)
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("12.50")))
}
