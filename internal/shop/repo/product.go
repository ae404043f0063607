package repo

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const productsTable = "products"

var productColumns = []string{"id", "name", "price", "stockQuantity"}

type ProductRepo struct {
	store *csvstore.Store
}

func NewProductRepo(store *csvstore.Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) FindAll() ([]domain.Product, error) {
	rows, err := r.store.ReadAll(productsTable)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row["price"])
		if err != nil {
			return nil, fmt.Errorf("product %s: bad price %q: %w", row["id"], row["price"], err)
		}
		stock, err := strconv.Atoi(row["stockQuantity"])
		if err != nil {
			return nil, fmt.Errorf("product %s: bad stockQuantity %q: %w", row["id"], row["stockQuantity"], err)
		}
		products = append(products, domain.Product{
			ID:            domain.ProductID(row["id"]),
			Name:          row["name"],
			Price:         price,
			StockQuantity: stock,
		})
	}
	return products, nil
}

func (r *ProductRepo) FindByID(id domain.ProductID) (domain.Product, error) {
	all, err := r.FindAll()
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
}

// Upsert replaces the product's row if the id exists, otherwise appends it.
func (r *ProductRepo) Upsert(product domain.Product) error {
	all, err := r.FindAll()
	if err != nil {
		return err
	}
	replaced := false
	for i, p := range all {
		if p.ID == product.ID {
			all[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, product)
	}
	return r.saveAll(all)
}

func (r *ProductRepo) DeleteByID(id domain.ProductID) error {
	all, err := r.FindAll()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, p := range all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(all) {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return r.saveAll(kept)
}

func (r *ProductRepo) saveAll(products []domain.Product) error {
	rows := make([]csvstore.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, csvstore.Row{
			"id":            string(p.ID),
			"name":          p.Name,
			"price":         p.Price.String(),
			"stockQuantity": strconv.Itoa(p.StockQuantity),
		})
	}
	return r.store.WriteAll(productsTable, productColumns, rows)
}
