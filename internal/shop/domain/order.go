package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderID string

type OrderStatus string

const (
	OrderStatusPaid OrderStatus = "PAID"
)

// OrderLine freezes the unit price read at checkout time. Later catalog
// changes never touch a persisted order.
type OrderLine struct {
	ProductID ProductID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is append-only: once written there is no update path.
type Order struct {
	OrderID     OrderID
	UserID      UserID
	OrderDate   time.Time
	Lines       []OrderLine
	TotalAmount decimal.Decimal
	Status      OrderStatus
}

type PaymentStatus string

const (
	PaymentStatusPaid PaymentStatus = "PAID"
)

// PaymentMethodStub marks the demo payment path: no processor is involved,
// the record simply mirrors the order total.
const PaymentMethodStub = "STUB"

type Payment struct {
	PaymentID   string
	OrderID     OrderID
	PaymentDate time.Time
	Method      string
	Amount      decimal.Decimal
	Status      PaymentStatus
}
