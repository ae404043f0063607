package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ProductID string

// ReorderThreshold is the stock level at or below which low-stock signals
// fire. Shared by admin stock edits and the checkout decrement path.
const ReorderThreshold = 5

type Product struct {
	ID            ProductID
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// DecrementStock takes qty units off the shelf. Stock never goes negative:
// asking for more than is available fails without mutating the product.
func (p *Product) DecrementStock(qty int) error {
	if qty > p.StockQuantity {
		return fmt.Errorf("product %s: %w", p.ID, ErrInsufficientStock)
	}
	p.StockQuantity -= qty
	return nil
}

func (p *Product) IncrementStock(qty int) {
	p.StockQuantity += qty
}

func (p *Product) SetPrice(newPrice decimal.Decimal) error {
	if newPrice.IsNegative() {
		return ErrInvalidPrice
	}
	p.Price = newPrice
	return nil
}

// LowStock reports whether the product is at or below the reorder threshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= ReorderThreshold
}
