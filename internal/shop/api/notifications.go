package api

import (
	"net/http"
	"time"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
)

type notificationDTO struct {
	NotificationID string    `json:"notificationId"`
	UserID         string    `json:"userId"`
	Type           string    `json:"type"`
	Text           string    `json:"text"`
	Seen           bool      `json:"seen"`
	Timestamp      time.Time `json:"timestamp"`
}

func toNotificationDTO(n domain.Notification) notificationDTO {
	return notificationDTO{
		NotificationID: n.NotificationID,
		UserID:         string(n.UserID),
		Type:           string(n.Type),
		Text:           n.Text,
		Seen:           n.Seen,
		Timestamp:      n.Timestamp,
	}
}

func (a *API) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := a.notes.ListForUser(currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]notificationDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNotificationDTO(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleMarkSeen(w http.ResponseWriter, r *http.Request) {
	if err := a.notes.MarkSeen(currentUser(r).ID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
