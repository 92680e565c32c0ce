package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/middleware"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/response"
)

type eventTimeService interface {
	GetMatrix(ctx context.Context, uid, flightID string) (dto.MatrixResponse, error)
	CommitCell(ctx context.Context, uid, flightID, code, kind string, req dto.CommitCellRequest) (dto.CommitCellResponse, error)
	ListEntries(ctx context.Context, flightID string) ([]dto.EventTime, error)
	ListMessages(ctx context.Context, flightID string) ([]models.Message, error)
}

type eventTimeHandlers struct {
	ResponseHandler response.ResponseHandler
	EventTimeSvc    eventTimeService
}

func NewEventTimeHandlers(deps *Deps) *eventTimeHandlers {
	return &eventTimeHandlers{
		ResponseHandler: deps.ResponseHandler,
		EventTimeSvc:    deps.EventTimeSvc,
	}
}

// ReadRoutes are mounted under /flights and answer anonymous callers with
// a read-only matrix.
func (h *eventTimeHandlers) ReadRoutes(r chi.Router) {
	r.Get("/{flightId}/matrix", h.GetMatrix)
	r.Get("/{flightId}/event-times", h.ListEntries)
	r.Get("/{flightId}/messages", h.ListMessages)
}

func (h *eventTimeHandlers) WriteRoutes(r chi.Router) {
	r.Put("/{flightId}/matrix/{code}/{kind}", h.CommitCell)
}

func (h *eventTimeHandlers) GetMatrix(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.EventTimeSvc.GetMatrix(r.Context(), uid, chi.URLParam(r, "flightId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *eventTimeHandlers) CommitCell(w http.ResponseWriter, r *http.Request) {
	flightID := chi.URLParam(r, "flightId")
	code := strings.ToUpper(chi.URLParam(r, "code"))
	kind := strings.ToUpper(chi.URLParam(r, "kind"))

	var req dto.CommitCellRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	resp, err := h.EventTimeSvc.CommitCell(r.Context(), uid, flightID, code, kind, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	status := http.StatusOK
	if resp.Action == "create" {
		status = http.StatusCreated
	}
	h.ResponseHandler.WriteSuccess(w, r, status, resp)
}

func (h *eventTimeHandlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.EventTimeSvc.ListEntries(r.Context(), chi.URLParam(r, "flightId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, entries)
}

func (h *eventTimeHandlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.EventTimeSvc.ListMessages(r.Context(), chi.URLParam(r, "flightId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, messages)
}
