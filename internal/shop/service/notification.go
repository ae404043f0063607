package service

import (
	"fmt"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
)

type NotificationService struct {
	notes *repo.NotificationRepo
}

func NewNotificationService(notes *repo.NotificationRepo) *NotificationService {
	return &NotificationService{notes: notes}
}

func (s *NotificationService) ListForUser(userID domain.UserID) ([]domain.Notification, error) {
	return s.notes.FindByUserID(userID)
}

func (s *NotificationService) ListAll() ([]domain.Notification, error) {
	return s.notes.FindAll()
}

// MarkSeen flips the seen flag, but only on the owner's notification.
func (s *NotificationService) MarkSeen(userID domain.UserID, notificationID string) error {
	mine, err := s.notes.FindByUserID(userID)
	if err != nil {
		return err
	}
	for _, n := range mine {
		if n.NotificationID == notificationID {
			return s.notes.MarkSeen(notificationID)
		}
	}
	return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
}
