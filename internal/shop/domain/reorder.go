package domain

import "time"

// ReorderRequest is an append-only log entry for the operations team, not
// a task queue: nothing ever consumes or dequeues it.
type ReorderRequest struct {
	ReorderID     string
	ProductID     ProductID
	StockQuantity int
	Threshold     int
	RequestedAt   time.Time
}
