package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/response"
)

type eventCodeService interface {
	ListEventCodes(ctx context.Context) ([]models.EventCode, error)
	CreateEventCode(ctx context.Context, req dto.CreateEventCodeRequest) (*models.EventCode, error)
	TimeKinds() []models.TimeKind
}

type eventCodeHandlers struct {
	ResponseHandler response.ResponseHandler
	EventCodeSvc    eventCodeService
}

func NewEventCodeHandlers(deps *Deps) *eventCodeHandlers {
	return &eventCodeHandlers{
		ResponseHandler: deps.ResponseHandler,
		EventCodeSvc:    deps.EventCodeSvc,
	}
}

func (h *eventCodeHandlers) ReadRoutes(r chi.Router) {
	r.Get("/event-codes", h.ListEventCodes)
	r.Get("/time-kinds", h.GetTimeKinds)
}

func (h *eventCodeHandlers) WriteRoutes(r chi.Router) {
	r.Post("/event-codes", h.CreateEventCode)
}

func (h *eventCodeHandlers) ListEventCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.EventCodeSvc.ListEventCodes(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, codes)
}

func (h *eventCodeHandlers) CreateEventCode(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	c, err := h.EventCodeSvc.CreateEventCode(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, c)
}

func (h *eventCodeHandlers) GetTimeKinds(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.EventCodeSvc.TimeKinds())
}
