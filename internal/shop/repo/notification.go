package repo

import (
	"fmt"
	"strconv"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const notificationsTable = "notifications"

var notificationColumns = []string{"notificationId", "userId", "type", "text", "seen", "timestamp"}

type NotificationRepo struct {
	store *csvstore.Store
}

func NewNotificationRepo(store *csvstore.Store) *NotificationRepo {
	return &NotificationRepo{store: store}
}

func (r *NotificationRepo) Append(note domain.Notification) error {
	rows, err := r.store.ReadAll(notificationsTable)
	if err != nil {
		return err
	}
	rows = append(rows, toNotificationRow(note))
	return r.store.WriteAll(notificationsTable, notificationColumns, rows)
}

func (r *NotificationRepo) FindAll() ([]domain.Notification, error) {
	rows, err := r.store.ReadAll(notificationsTable)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromNotificationRow(row))
	}
	return out, nil
}

func (r *NotificationRepo) FindByUserID(userID domain.UserID) ([]domain.Notification, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	var out []domain.Notification
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkSeen flips the seen flag to true. The transition is one-way; marking
// an already-seen notification is a no-op.
func (r *NotificationRepo) MarkSeen(notificationID string) error {
	rows, err := r.store.ReadAll(notificationsTable)
	if err != nil {
		return err
	}
	found := false
	for _, row := range rows {
		if row["notificationId"] == notificationID {
			row["seen"] = "true"
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	return r.store.WriteAll(notificationsTable, notificationColumns, rows)
}

func toNotificationRow(n domain.Notification) csvstore.Row {
	return csvstore.Row{
		"notificationId": n.NotificationID,
		"userId":         string(n.UserID),
		"type":           string(n.Type),
		"text":           n.Text,
		"seen":           strconv.FormatBool(n.Seen),
		"timestamp":      formatTime(n.Timestamp),
	}
}

func fromNotificationRow(row csvstore.Row) domain.Notification {
	seen, _ := strconv.ParseBool(row["seen"])
	return domain.Notification{
		NotificationID: row["notificationId"],
		UserID:         domain.UserID(row["userId"]),
		Type:           domain.NotificationType(row["type"]),
		Text:           row["text"],
		Seen:           seen,
		Timestamp:      parseTime(row["timestamp"]),
	}
}
