package handlers

import (
	"net/http"

	"github.com/Chandanpatidar24/Project-Management/services"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.GetNotifications(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	notificationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	notification, err := h.service.MarkAsRead(r.Context(), caller, notificationID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notification)
}
