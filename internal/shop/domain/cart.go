package domain

import "fmt"

type CartLine struct {
	ProductID ProductID
	Quantity  int
}

// Cart is the in-memory view of one user's cart, rebuilt from persisted
// lines on every access. A persisted line always has quantity > 0.
type Cart struct {
	UserID UserID
	Lines  []CartLine
}

func NewCart(userID UserID) *Cart {
	return &Cart{UserID: userID}
}

// AddItem merges qty into an existing line for the product, or appends a
// new line. Quantity validation happens in the service layer.
func (c *Cart) AddItem(productID ProductID, qty int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += qty
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: qty})
}

// UpdateItem sets the line's quantity; newQty <= 0 removes the line.
func (c *Cart) UpdateItem(productID ProductID, newQty int) error {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if newQty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = newQty
		}
		return nil
	}
	return fmt.Errorf("product %s not in cart: %w", productID, ErrNotFound)
}

func (c *Cart) RemoveItem(productID ProductID) {
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (c *Cart) Clone() *Cart {
	cp := &Cart{UserID: c.UserID, Lines: make([]CartLine, len(c.Lines))}
	copy(cp.Lines, c.Lines)
	return cp
}
