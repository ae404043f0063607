package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
	"github.com/nazeru/shop-csv-go/pkg/contracts"
	"github.com/nazeru/shop-csv-go/pkg/kafka"
	"github.com/nazeru/shop-csv-go/pkg/logging"
)

// OrderService orchestrates checkout: decrement stock line by line, freeze
// prices into an order, record the payment, notify, clear the cart. There
// is no transaction facility underneath, so atomicity is approximated by
// compensation: every decrement already applied is reversed before a
// failure is returned.
type OrderService struct {
	carts    *CartService
	products *ProductService
	orders   *repo.OrderRepo
	payments *repo.PaymentRepo
	notifier *Notifier
	events   *kafka.Publisher
}

func NewOrderService(carts *CartService, products *ProductService, orders *repo.OrderRepo, payments *repo.PaymentRepo, notifier *Notifier, events *kafka.Publisher) *OrderService {
	return &OrderService{
		carts:    carts,
		products: products,
		orders:   orders,
		payments: payments,
		notifier: notifier,
		events:   events,
	}
}

func (s *OrderService) GetOrdersForUser(userID domain.UserID) ([]domain.Order, error) {
	return s.orders.FindByUserID(userID)
}

// GetOrderByID returns the order only if it belongs to userID. The caller
// can tell a missing order (ErrNotFound) from someone else's order
// (ErrForbidden) to choose 404 vs 403.
func (s *OrderService) GetOrderByID(orderID domain.OrderID, userID domain.UserID) (domain.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, fmt.Errorf("order %s: %w", orderID, domain.ErrForbidden)
	}
	return order, nil
}

// GetPaymentsByOrderID composes the ownership guard, so payment visibility
// always inherits order ownership.
func (s *OrderService) GetPaymentsByOrderID(orderID domain.OrderID, userID domain.UserID) ([]domain.Payment, error) {
	if _, err := s.GetOrderByID(orderID, userID); err != nil {
		return nil, err
	}
	return s.payments.FindByOrderID(orderID)
}

type appliedDecrement struct {
	productID domain.ProductID
	qty       int
}

// Checkout runs the full checkout for the user's cart. On success the
// stock is decremented, an order and payment are appended, the user is
// notified and the cart is cleared. On any failure after the first
// decrement, the applied decrements are compensated and the cart is left
// intact so the user can retry.
func (s *OrderService) Checkout(ctx context.Context, userID domain.UserID) (domain.Order, domain.Payment, error) {
	cart, err := s.carts.GetCart(userID)
	if err != nil {
		return domain.Order{}, domain.Payment{}, err
	}
	if cart.Empty() {
		return domain.Order{}, domain.Payment{}, domain.ErrEmptyCart
	}

	// Rollback ledger: every decrement that succeeded goes in here, and
	// the deferred compensation drains it on any exit path that did not
	// reach success.
	var applied []appliedDecrement
	success := false
	defer func() {
		if !success {
			s.compensate(ctx, userID, applied)
		}
	}()

	for _, line := range cart.Lines {
		updated, err := s.products.DecrementStock(line.ProductID, line.Quantity)
		if err != nil {
			return domain.Order{}, domain.Payment{}, err
		}
		applied = append(applied, appliedDecrement{productID: line.ProductID, qty: line.Quantity})

		// Low-stock side effects are informational log entries. They are
		// not retracted if a later line aborts the checkout.
		if updated.LowStock() {
			if err := s.products.LowStockAlert(ctx, updated); err != nil {
				return domain.Order{}, domain.Payment{}, err
			}
		}
	}

	// Prices are re-read here, not taken from add-to-cart time: the order
	// freezes whatever the catalog says at checkout.
	total := decimal.Zero
	orderLines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		p, err := s.products.GetByID(line.ProductID)
		if err != nil {
			return domain.Order{}, domain.Payment{}, err
		}
		orderLines = append(orderLines, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	now := time.Now().UTC()
	order := domain.Order{
		OrderID:     domain.OrderID(uuid.NewString()),
		UserID:      userID,
		OrderDate:   now,
		Lines:       orderLines,
		TotalAmount: total,
		Status:      domain.OrderStatusPaid,
	}
	if err := s.orders.Append(order); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		OrderID:     order.OrderID,
		PaymentDate: now,
		Method:      domain.PaymentMethodStub,
		Amount:      total,
		Status:      domain.PaymentStatusPaid,
	}
	if err := s.payments.Append(payment); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	text := fmt.Sprintf("Your order #%.8s… has been placed successfully.", order.OrderID)
	if err := s.notifier.NotifyUser(userID, domain.NotificationOrderPlaced, text); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	if err := s.carts.ClearCart(userID); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	success = true
	s.events.Publish(ctx, contracts.Event{
		EventID: uuid.NewString(),
		UserID:  string(userID),
		OrderID: string(order.OrderID),
		Type:    contracts.EventOrderPlaced,
		Payload: map[string]any{"total": total.String(), "lines": len(orderLines)},
	})
	logging.Log(logging.Fields{
		Service: "shop-server",
		UserID:  string(userID),
		OrderID: string(order.OrderID),
		Step:    "checkout",
		Status:  "paid",
	})
	return order, payment, nil
}

// compensate reverses already-applied stock decrements. Best effort: a
// failed increment is logged and skipped, never compensated further.
func (s *OrderService) compensate(ctx context.Context, userID domain.UserID, applied []appliedDecrement) {
	if len(applied) == 0 {
		return
	}
	for _, d := range applied {
		if _, err := s.products.IncrementStock(d.productID, d.qty); err != nil {
			logging.Log(logging.Fields{
				Service:   "shop-server",
				UserID:    string(userID),
				ProductID: string(d.productID),
				Step:      "checkout_rollback",
				Status:    "increment_failed",
				Message:   err.Error(),
			})
		}
	}
	s.events.Publish(ctx, contracts.Event{
		EventID: uuid.NewString(),
		UserID:  string(userID),
		Type:    contracts.EventOrderCompensated,
		Payload: map[string]any{"lines": len(applied)},
	})
	logging.Log(logging.Fields{
		Service: "shop-server",
		UserID:  string(userID),
		Step:    "checkout_rollback",
		Status:  "compensated",
	})
}
