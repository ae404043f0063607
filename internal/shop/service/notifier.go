package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
)

// Notifier is the single place that fans notifications out to groups of
// users. One row per recipient; callers never iterate the user set
// themselves, so batching could replace the loop without touching them.
type Notifier struct {
	users *repo.UserRepo
	notes *repo.NotificationRepo
}

func NewNotifier(users *repo.UserRepo, notes *repo.NotificationRepo) *Notifier {
	return &Notifier{users: users, notes: notes}
}

func (n *Notifier) NotifyUser(userID domain.UserID, typ domain.NotificationType, text string) error {
	return n.notes.Append(domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           typ,
		Text:           text,
		Seen:           false,
		Timestamp:      time.Now().UTC(),
	})
}

// NotifyAdmins sends one notification to every admin user.
func (n *Notifier) NotifyAdmins(typ domain.NotificationType, text string) error {
	return n.notifyWhere(typ, text, func(u domain.User) bool { return u.IsAdmin() })
}

// NotifyClients sends one notification to every non-admin user.
func (n *Notifier) NotifyClients(typ domain.NotificationType, text string) error {
	return n.notifyWhere(typ, text, func(u domain.User) bool { return !u.IsAdmin() })
}

func (n *Notifier) notifyWhere(typ domain.NotificationType, text string, match func(domain.User) bool) error {
	users, err := n.users.FindAll()
	if err != nil {
		return err
	}
	for _, u := range users {
		if !match(u) {
			continue
		}
		if err := n.NotifyUser(u.ID, typ, text); err != nil {
			return err
		}
	}
	return nil
}
