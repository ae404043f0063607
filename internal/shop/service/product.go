package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
	"github.com/nazeru/shop-csv-go/pkg/contracts"
	"github.com/nazeru/shop-csv-go/pkg/kafka"
)

// ProductService owns the product table: every stock and price mutation
// goes through here, validates its invariant before persisting, and emits
// audit/notification side effects for admin actions.
type ProductService struct {
	// mu serializes every read-modify-write of the products table. The CSV
	// store has no isolation across calls, so without this two concurrent
	// writers (checkout decrements, price changes) could both read the same
	// snapshot and silently lose an update.
	mu sync.Mutex

	products *repo.ProductRepo
	audit    *repo.AuditRepo
	reorders *repo.ReorderRepo
	notifier *Notifier
	events   *kafka.Publisher
}

func NewProductService(products *repo.ProductRepo, audit *repo.AuditRepo, reorders *repo.ReorderRepo, notifier *Notifier, events *kafka.Publisher) *ProductService {
	return &ProductService{
		products: products,
		audit:    audit,
		reorders: reorders,
		notifier: notifier,
		events:   events,
	}
}

func (s *ProductService) ListAll() ([]domain.Product, error) {
	return s.products.FindAll()
}

func (s *ProductService) GetByID(id domain.ProductID) (domain.Product, error) {
	return s.products.FindByID(id)
}

// Create adds a product to the catalog and audits the creation.
func (s *ProductService) Create(adminID domain.UserID, name string, price decimal.Decimal, stockQuantity int) (domain.Product, error) {
	if price.IsNegative() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if stockQuantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Product{
		ID:            domain.ProductID(uuid.NewString()),
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
	}
	if err := s.products.Upsert(p); err != nil {
		return domain.Product{}, err
	}
	if err := s.appendAudit(adminID, domain.AuditCreate, string(p.ID), "", productSnapshot(p)); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// ChangePrice updates the price, audits old→new and tells every client
// about the change.
func (s *ProductService) ChangePrice(ctx context.Context, id domain.ProductID, newPrice decimal.Decimal, adminID domain.UserID) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.products.FindByID(id)
	if err != nil {
		return domain.Product{}, err
	}
	oldPrice := p.Price
	if err := p.SetPrice(newPrice); err != nil {
		return domain.Product{}, err
	}
	if err := s.products.Upsert(p); err != nil {
		return domain.Product{}, err
	}
	if err := s.appendAudit(adminID, domain.AuditUpdatePrice, string(id), oldPrice.String(), newPrice.String()); err != nil {
		return domain.Product{}, err
	}
	text := fmt.Sprintf("Product %q (ID: %s) price changed from $%s to $%s.",
		p.Name, id, oldPrice.StringFixed(2), newPrice.StringFixed(2))
	if err := s.notifier.NotifyClients(domain.NotificationProductUpdated, text); err != nil {
		return domain.Product{}, err
	}
	s.events.Publish(ctx, contracts.Event{
		EventID:   uuid.NewString(),
		ProductID: string(id),
		Type:      contracts.EventProductUpdated,
		Payload:   map[string]any{"old_price": oldPrice.String(), "new_price": newPrice.String()},
	})
	return p, nil
}

// ChangeStock sets the absolute stock level (admin restock/correction).
// Dropping to the reorder threshold or below raises the low-stock alert.
func (s *ProductService) ChangeStock(ctx context.Context, id domain.ProductID, newQuantity int, adminID domain.UserID) (domain.Product, error) {
	if newQuantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.products.FindByID(id)
	if err != nil {
		return domain.Product{}, err
	}
	oldQty := p.StockQuantity
	p.StockQuantity = newQuantity
	if err := s.products.Upsert(p); err != nil {
		return domain.Product{}, err
	}
	if err := s.appendAudit(adminID, domain.AuditUpdateStock, string(id), strconv.Itoa(oldQty), strconv.Itoa(newQuantity)); err != nil {
		return domain.Product{}, err
	}
	if p.LowStock() {
		text := fmt.Sprintf("Product %q (ID: %s) is low on stock (now: %d).", p.Name, p.ID, p.StockQuantity)
		if err := s.lowStockAlert(ctx, p, text); err != nil {
			return domain.Product{}, err
		}
	}
	return p, nil
}

// DecrementStock takes qty units off the shelf, failing without any write
// when not enough stock is available. No audit or notification fires here;
// the checkout path owns its own side effects.
func (s *ProductService) DecrementStock(id domain.ProductID, qty int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.products.FindByID(id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := p.DecrementStock(qty); err != nil {
		return domain.Product{}, err
	}
	if err := s.products.Upsert(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// IncrementStock always succeeds for an existing product. Used both for
// restocking and for compensating a failed checkout.
func (s *ProductService) IncrementStock(id domain.ProductID, qty int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.products.FindByID(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.IncrementStock(qty)
	if err := s.products.Upsert(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// DeleteByID removes the product, audits the old snapshot and tells every
// client the product is gone.
func (s *ProductService) DeleteByID(ctx context.Context, id domain.ProductID, adminID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.products.DeleteByID(id); err != nil {
		return err
	}
	if err := s.appendAudit(adminID, domain.AuditDelete, string(id), productSnapshot(old), ""); err != nil {
		return err
	}
	text := fmt.Sprintf("Product %q (ID: %s) has been removed from the catalog.", old.Name, id)
	if err := s.notifier.NotifyClients(domain.NotificationProductUpdated, text); err != nil {
		return err
	}
	s.events.Publish(ctx, contracts.Event{
		EventID:   uuid.NewString(),
		ProductID: string(id),
		Type:      contracts.EventProductDeleted,
	})
	return nil
}

// LowStockAlert records one ReorderRequest and tells every admin the
// product is running out. Callers invoke it after a mutation left the
// product at or below the reorder threshold.
func (s *ProductService) LowStockAlert(ctx context.Context, p domain.Product) error {
	text := fmt.Sprintf("Product %q (ID: %s) is low on stock (remaining: %d).", p.Name, p.ID, p.StockQuantity)
	return s.lowStockAlert(ctx, p, text)
}

func (s *ProductService) lowStockAlert(ctx context.Context, p domain.Product, text string) error {
	rr := domain.ReorderRequest{
		ReorderID:     uuid.NewString(),
		ProductID:     p.ID,
		StockQuantity: p.StockQuantity,
		Threshold:     domain.ReorderThreshold,
		RequestedAt:   time.Now().UTC(),
	}
	if err := s.reorders.Append(rr); err != nil {
		return err
	}
	if err := s.notifier.NotifyAdmins(domain.NotificationLowStock, text); err != nil {
		return err
	}
	s.events.Publish(ctx, contracts.Event{
		EventID:   uuid.NewString(),
		ProductID: string(p.ID),
		Type:      contracts.EventStockLow,
		Payload:   map[string]any{"stock": p.StockQuantity, "threshold": domain.ReorderThreshold},
	})
	return nil
}

func (s *ProductService) appendAudit(adminID domain.UserID, action domain.AuditAction, targetID, oldValue, newValue string) error {
	return s.audit.Append(domain.AuditEntry{
		AuditID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		AdminID:   adminID,
		Action:    action,
		TargetID:  targetID,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
}

func productSnapshot(p domain.Product) string {
	data, _ := json.Marshal(map[string]any{
		"name":          p.Name,
		"price":         p.Price.String(),
		"stockQuantity": p.StockQuantity,
	})
	return string(data)
}
