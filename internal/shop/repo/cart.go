package repo

import (
	"fmt"
	"strconv"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const cartsTable = "carts"

// One row per cart line; all users share the table.
var cartColumns = []string{"clientId", "productId", "quantity"}

type CartRepo struct {
	store *csvstore.Store
}

func NewCartRepo(store *csvstore.Store) *CartRepo {
	return &CartRepo{store: store}
}

func (r *CartRepo) FindByUserID(userID domain.UserID) ([]domain.CartLine, error) {
	rows, err := r.store.ReadAll(cartsTable)
	if err != nil {
		return nil, err
	}
	var lines []domain.CartLine
	for _, row := range rows {
		if row["clientId"] != string(userID) {
			continue
		}
		qty, err := strconv.Atoi(row["quantity"])
		if err != nil {
			return nil, fmt.Errorf("cart line %s/%s: bad quantity %q: %w", userID, row["productId"], row["quantity"], err)
		}
		lines = append(lines, domain.CartLine{ProductID: domain.ProductID(row["productId"]), Quantity: qty})
	}
	return lines, nil
}

// SaveCart overwrites all of the user's lines in one write; other users'
// rows pass through untouched.
func (r *CartRepo) SaveCart(userID domain.UserID, lines []domain.CartLine) error {
	rows, err := r.store.ReadAll(cartsTable)
	if err != nil {
		return err
	}
	merged := make([]csvstore.Row, 0, len(rows)+len(lines))
	for _, row := range rows {
		if row["clientId"] != string(userID) {
			merged = append(merged, row)
		}
	}
	for _, l := range lines {
		merged = append(merged, csvstore.Row{
			"clientId":  string(userID),
			"productId": string(l.ProductID),
			"quantity":  strconv.Itoa(l.Quantity),
		})
	}
	return r.store.WriteAll(cartsTable, cartColumns, merged)
}

func (r *CartRepo) DeleteCart(userID domain.UserID) error {
	return r.SaveCart(userID, nil)
}
