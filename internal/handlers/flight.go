package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/response"
)

type flightService interface {
	CreateFlight(ctx context.Context, req dto.CreateFlightRequest) (*models.Flight, error)
	GetFlight(ctx context.Context, flightID string) (*models.Flight, error)
	ListFlights(ctx context.Context) ([]*models.Flight, error)
	UpdateFlight(ctx context.Context, flightID string, req dto.UpdateFlightRequest) (*models.Flight, error)
}

type phaseService interface {
	GetDurations(ctx context.Context, flightID string) (dto.PhaseDurationsResponse, error)
}

type flightHandlers struct {
	ResponseHandler response.ResponseHandler
	FlightSvc       flightService
	PhaseSvc        phaseService
}

func NewFlightHandlers(deps *Deps) *flightHandlers {
	return &flightHandlers{
		ResponseHandler: deps.ResponseHandler,
		FlightSvc:       deps.FlightSvc,
		PhaseSvc:        deps.PhaseSvc,
	}
}

func (h *flightHandlers) ReadRoutes(r chi.Router) {
	r.Get("/", h.ListFlights)
	r.Get("/{flightId}", h.GetFlight)
	r.Get("/{flightId}/phases", h.GetPhases)
}

func (h *flightHandlers) WriteRoutes(r chi.Router) {
	r.Post("/", h.CreateFlight)
	r.Put("/{flightId}", h.UpdateFlight)
}

func (h *flightHandlers) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFlightRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	f, err := h.FlightSvc.CreateFlight(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.NewFlight(f))
}

func (h *flightHandlers) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.FlightSvc.ListFlights(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	out := make([]dto.Flight, 0, len(flights))
	for _, f := range flights {
		out = append(out, dto.NewFlight(f))
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, out)
}

func (h *flightHandlers) GetFlight(w http.ResponseWriter, r *http.Request) {
	f, err := h.FlightSvc.GetFlight(r.Context(), chi.URLParam(r, "flightId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.NewFlight(f))
}

func (h *flightHandlers) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	flightID := chi.URLParam(r, "flightId")
	var req dto.UpdateFlightRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	f, err := h.FlightSvc.UpdateFlight(r.Context(), flightID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.NewFlight(f))
}

func (h *flightHandlers) GetPhases(w http.ResponseWriter, r *http.Request) {
	resp, err := h.PhaseSvc.GetDurations(r.Context(), chi.URLParam(r, "flightId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
