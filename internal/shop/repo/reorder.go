package repo

import (
	"fmt"
	"strconv"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const reordersTable = "reorders"

var reorderColumns = []string{"reorderId", "productId", "stockQuantity", "threshold", "requestedAt"}

type ReorderRepo struct {
	store *csvstore.Store
}

func NewReorderRepo(store *csvstore.Store) *ReorderRepo {
	return &ReorderRepo{store: store}
}

func (r *ReorderRepo) Append(rr domain.ReorderRequest) error {
	rows, err := r.store.ReadAll(reordersTable)
	if err != nil {
		return err
	}
	rows = append(rows, csvstore.Row{
		"reorderId":     rr.ReorderID,
		"productId":     string(rr.ProductID),
		"stockQuantity": strconv.Itoa(rr.StockQuantity),
		"threshold":     strconv.Itoa(rr.Threshold),
		"requestedAt":   formatTime(rr.RequestedAt),
	})
	return r.store.WriteAll(reordersTable, reorderColumns, rows)
}

func (r *ReorderRepo) FindAll() ([]domain.ReorderRequest, error) {
	rows, err := r.store.ReadAll(reordersTable)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReorderRequest, 0, len(rows))
	for _, row := range rows {
		stock, err := strconv.Atoi(row["stockQuantity"])
		if err != nil {
			return nil, fmt.Errorf("reorder %s: bad stockQuantity %q: %w", row["reorderId"], row["stockQuantity"], err)
		}
		threshold, err := strconv.Atoi(row["threshold"])
		if err != nil {
			return nil, fmt.Errorf("reorder %s: bad threshold %q: %w", row["reorderId"], row["threshold"], err)
		}
		out = append(out, domain.ReorderRequest{
			ReorderID:     row["reorderId"],
			ProductID:     domain.ProductID(row["productId"]),
			StockQuantity: stock,
			Threshold:     threshold,
			RequestedAt:   parseTime(row["requestedAt"]),
		})
	}
	return out, nil
}
