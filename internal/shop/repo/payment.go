package repo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const paymentsTable = "payments"

var paymentColumns = []string{"paymentId", "orderId", "paymentDate", "method", "amount", "status"}

type PaymentRepo struct {
	store *csvstore.Store
}

func NewPaymentRepo(store *csvstore.Store) *PaymentRepo {
	return &PaymentRepo{store: store}
}

func (r *PaymentRepo) Append(payment domain.Payment) error {
	rows, err := r.store.ReadAll(paymentsTable)
	if err != nil {
		return err
	}
	rows = append(rows, csvstore.Row{
		"paymentId":   payment.PaymentID,
		"orderId":     string(payment.OrderID),
		"paymentDate": formatTime(payment.PaymentDate),
		"method":      payment.Method,
		"amount":      payment.Amount.String(),
		"status":      string(payment.Status),
	})
	return r.store.WriteAll(paymentsTable, paymentColumns, rows)
}

func (r *PaymentRepo) FindByOrderID(orderID domain.OrderID) ([]domain.Payment, error) {
	rows, err := r.store.ReadAll(paymentsTable)
	if err != nil {
		return nil, err
	}
	var payments []domain.Payment
	for _, row := range rows {
		if row["orderId"] != string(orderID) {
			continue
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return nil, fmt.Errorf("payment %s: bad amount %q: %w", row["paymentId"], row["amount"], err)
		}
		payments = append(payments, domain.Payment{
			PaymentID:   row["paymentId"],
			OrderID:     orderID,
			PaymentDate: parseTime(row["paymentDate"]),
			Method:      row["method"],
			Amount:      amount,
			Status:      domain.PaymentStatus(row["status"]),
		})
	}
	return payments, nil
}
