package repo

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const ordersTable = "orders"

// Order lines are embedded as one JSON column so an order stays a single
// row of the table.
var orderColumns = []string{"orderId", "userId", "orderDate", "items", "totalAmount", "status"}

type OrderRepo struct {
	store *csvstore.Store
}

func NewOrderRepo(store *csvstore.Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Append(order domain.Order) error {
	rows, err := r.store.ReadAll(ordersTable)
	if err != nil {
		return err
	}
	items, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("order %s: encode lines: %w", order.OrderID, err)
	}
	rows = append(rows, csvstore.Row{
		"orderId":     string(order.OrderID),
		"userId":      string(order.UserID),
		"orderDate":   formatTime(order.OrderDate),
		"items":       string(items),
		"totalAmount": order.TotalAmount.String(),
		"status":      string(order.Status),
	})
	return r.store.WriteAll(ordersTable, orderColumns, rows)
}

func (r *OrderRepo) FindAll() ([]domain.Order, error) {
	rows, err := r.store.ReadAll(ordersTable)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		var lines []domain.OrderLine
		if err := json.Unmarshal([]byte(row["items"]), &lines); err != nil {
			return nil, fmt.Errorf("order %s: decode lines: %w", row["orderId"], err)
		}
		total, err := decimal.NewFromString(row["totalAmount"])
		if err != nil {
			return nil, fmt.Errorf("order %s: bad totalAmount %q: %w", row["orderId"], row["totalAmount"], err)
		}
		orders = append(orders, domain.Order{
			OrderID:     domain.OrderID(row["orderId"]),
			UserID:      domain.UserID(row["userId"]),
			OrderDate:   parseTime(row["orderDate"]),
			Lines:       lines,
			TotalAmount: total,
			Status:      domain.OrderStatus(row["status"]),
		})
	}
	return orders, nil
}

func (r *OrderRepo) FindByID(orderID domain.OrderID) (domain.Order, error) {
	all, err := r.FindAll()
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range all {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
}

func (r *OrderRepo) FindByUserID(userID domain.UserID) ([]domain.Order, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	var out []domain.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
