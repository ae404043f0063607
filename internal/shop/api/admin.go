package api

import (
	"net/http"
	"time"
)

// Admin endpoints are read-only views over the append-only tables.

func (a *API) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	writeJSON(w, http.StatusOK, out)
}

type auditDTO struct {
	AuditID   string    `json:"auditId"`
	Timestamp time.Time `json:"timestamp"`
	AdminID   string    `json:"adminId"`
	Action    string    `json:"action"`
	TargetID  string    `json:"targetId"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
}

func (a *API) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := a.audit.FindAll()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]auditDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditDTO{
			AuditID:   e.AuditID,
			Timestamp: e.Timestamp,
			AdminID:   string(e.AdminID),
			Action:    string(e.Action),
			TargetID:  e.TargetID,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type reorderDTO struct {
	ReorderID     string    `json:"reorderId"`
	ProductID     string    `json:"productId"`
	StockQuantity int       `json:"stockQuantity"`
	Threshold     int       `json:"threshold"`
	RequestedAt   time.Time `json:"requestedAt"`
}

func (a *API) handleAdminReorders(w http.ResponseWriter, r *http.Request) {
	requests, err := a.reorders.FindAll()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]reorderDTO, 0, len(requests))
	for _, rr := range requests {
		out = append(out, reorderDTO{
			ReorderID:     rr.ReorderID,
			ProductID:     string(rr.ProductID),
			StockQuantity: rr.StockQuantity,
			Threshold:     rr.Threshold,
			RequestedAt:   rr.RequestedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleAdminNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := a.notes.ListAll()
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
