package service

import (
	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
)

// CartService owns the mapping from a user to their cart lines. The cart
// is rebuilt from persisted rows on every access, never cached.
type CartService struct {
	carts    *repo.CartRepo
	products *repo.ProductRepo
}

func NewCartService(carts *repo.CartRepo, products *repo.ProductRepo) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCart(userID domain.UserID) (*domain.Cart, error) {
	lines, err := s.carts.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	cart := domain.NewCart(userID)
	for _, l := range lines {
		cart.AddItem(l.ProductID, l.Quantity)
	}
	return cart.Clone(), nil
}

// AddToCart merges qty of the product into the user's cart. The product
// must exist and qty must be positive.
func (s *CartService) AddToCart(userID domain.UserID, productID domain.ProductID, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := s.products.FindByID(productID); err != nil {
		return nil, err
	}
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(productID, qty)
	if err := s.carts.SaveCart(userID, cart.Lines); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem sets a line's quantity; newQty <= 0 removes the line.
func (s *CartService) UpdateItem(userID domain.UserID, productID domain.ProductID, newQty int) (*domain.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateItem(productID, newQty); err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(userID, cart.Lines); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(userID domain.UserID, productID domain.ProductID) (*domain.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.carts.SaveCart(userID, cart.Lines); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ClearCart(userID domain.UserID) error {
	return s.carts.DeleteCart(userID)
}
