package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/response"
)

type aerodromeService interface {
	ListAerodromes(ctx context.Context) ([]models.Aerodrome, error)
	GetAerodrome(ctx context.Context, icao string) (*models.Aerodrome, error)
	CreateAerodrome(ctx context.Context, req dto.CreateAerodromeRequest) (*models.Aerodrome, error)
}

type aerodromeHandlers struct {
	ResponseHandler response.ResponseHandler
	AerodromeSvc    aerodromeService
}

func NewAerodromeHandlers(deps *Deps) *aerodromeHandlers {
	return &aerodromeHandlers{
		ResponseHandler: deps.ResponseHandler,
		AerodromeSvc:    deps.AerodromeSvc,
	}
}

func (h *aerodromeHandlers) ReadRoutes(r chi.Router) {
	r.Get("/aerodromes", h.ListAerodromes)
	r.Get("/aerodromes/{icao}", h.GetAerodrome)
}

func (h *aerodromeHandlers) WriteRoutes(r chi.Router) {
	r.Post("/aerodromes", h.CreateAerodrome)
}

func (h *aerodromeHandlers) ListAerodromes(w http.ResponseWriter, r *http.Request) {
	aerodromes, err := h.AerodromeSvc.ListAerodromes(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, aerodromes)
}

func (h *aerodromeHandlers) GetAerodrome(w http.ResponseWriter, r *http.Request) {
	a, err := h.AerodromeSvc.GetAerodrome(r.Context(), chi.URLParam(r, "icao"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, a)
}

func (h *aerodromeHandlers) CreateAerodrome(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAerodromeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	a, err := h.AerodromeSvc.CreateAerodrome(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, a)
}
