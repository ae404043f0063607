package domain

import "time"

type NotificationType string

const (
	NotificationLowStock       NotificationType = "LOW_STOCK"
	NotificationOrderPlaced    NotificationType = "ORDER_PLACED"
	NotificationProductUpdated NotificationType = "PRODUCT_UPDATED"
	NotificationGeneric        NotificationType = "GENERIC"
)

// Notification rows mutate only through the seen flag, false→true.
type Notification struct {
	NotificationID string
	UserID         UserID
	Type           NotificationType
	Text           string
	Seen           bool
	Timestamp      time.Time
}
