package domain

import "time"

type AuditAction string

const (
	AuditCreate      AuditAction = "CREATE"
	AuditUpdatePrice AuditAction = "UPDATE_PRICE"
	AuditUpdateStock AuditAction = "UPDATE_STOCK"
	AuditDelete      AuditAction = "DELETE"
)

// AuditEntry is an append-only record of an admin mutation. Old and new
// values are stringified snapshots.
type AuditEntry struct {
	AuditID   string
	Timestamp time.Time
	AdminID   UserID
	Action    AuditAction
	TargetID  string
	OldValue  string
	NewValue  string
}
