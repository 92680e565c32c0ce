package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flight-events/internal/middleware"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/response"
)

type notificationService interface {
	ListNotifications(ctx context.Context, uid string) ([]models.Notification, error)
}

type notificationHandlers struct {
	ResponseHandler response.ResponseHandler
	NotificationSvc notificationService
}

func NewNotificationHandlers(deps *Deps) *notificationHandlers {
	return &notificationHandlers{
		ResponseHandler: deps.ResponseHandler,
		NotificationSvc: deps.NotificationSvc,
	}
}

func (h *notificationHandlers) NotificationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListNotifications)
	return r
}

func (h *notificationHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	notes, err := h.NotificationSvc.ListNotifications(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, notes)
}
