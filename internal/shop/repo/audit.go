package repo

import (
	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const auditTable = "audit_trail"

var auditColumns = []string{"auditId", "timestamp", "adminId", "action", "targetId", "oldValue", "newValue"}

type AuditRepo struct {
	store *csvstore.Store
}

func NewAuditRepo(store *csvstore.Store) *AuditRepo {
	return &AuditRepo{store: store}
}

func (r *AuditRepo) Append(entry domain.AuditEntry) error {
	rows, err := r.store.ReadAll(auditTable)
	if err != nil {
		return err
	}
	rows = append(rows, csvstore.Row{
		"auditId":   entry.AuditID,
		"timestamp": formatTime(entry.Timestamp),
		"adminId":   string(entry.AdminID),
		"action":    string(entry.Action),
		"targetId":  entry.TargetID,
		"oldValue":  entry.OldValue,
		"newValue":  entry.NewValue,
	})
	return r.store.WriteAll(auditTable, auditColumns, rows)
}

func (r *AuditRepo) FindAll() ([]domain.AuditEntry, error) {
	rows, err := r.store.ReadAll(auditTable)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.AuditEntry{
			AuditID:   row["auditId"],
			Timestamp: parseTime(row["timestamp"]),
			AdminID:   domain.UserID(row["adminId"]),
			Action:    domain.AuditAction(row["action"]),
			TargetID:  row["targetId"],
			OldValue:  row["oldValue"],
			NewValue:  row["newValue"],
		})
	}
	return out, nil
}
