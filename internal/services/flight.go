package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/pkg/helpers"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type flightStore interface {
	Create(ctx context.Context, f *models.Flight) error
	Get(ctx context.Context, flightID string) (*models.Flight, error)
	List(ctx context.Context) ([]*models.Flight, error)
	Update(ctx context.Context, f *models.Flight) error
}

type flightService struct {
	store flightStore
}

func NewFlightService(store flightStore) *flightService {
	return &flightService{store: store}
}

func (s *flightService) CreateFlight(ctx context.Context, req dto.CreateFlightRequest) (*models.Flight, error) {
	f := &models.Flight{
		FlightID:  uuid.New().String(),
		Date:      strings.TrimSpace(req.Date),
		Aircraft:  strings.TrimSpace(req.Aircraft),
		Prefix:    strings.ToUpper(strings.TrimSpace(req.Prefix)),
		Number:    strings.TrimSpace(req.Number),
		Departure: strings.ToUpper(strings.TrimSpace(req.Departure)),
		Arrival:   strings.ToUpper(strings.TrimSpace(req.Arrival)),
	}
	if err := validateFlight(f); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("flight created", "flight_id", f.FlightID, "date", f.Date)
	return f, nil
}

func (s *flightService) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	return s.store.Get(ctx, flightID)
}

func (s *flightService) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	return s.store.List(ctx)
}

// UpdateFlight applies a patch. A new date moves the baseline every relative
// event time of the flight is rendered against.
func (s *flightService) UpdateFlight(ctx context.Context, flightID string, req dto.UpdateFlightRequest) (*models.Flight, error) {
	f, err := s.store.Get(ctx, flightID)
	if err != nil {
		return nil, err
	}
	previousDate := f.Date

	if f.Locked && !unlockOnly(req) {
		return nil, errs.NewValidationError(lockedFlightMessage)
	}
	f.Locked = helpers.ValueOr(req.Locked, f.Locked)
	f.Date = strings.TrimSpace(helpers.ValueOr(req.Date, f.Date))
	f.Aircraft = strings.TrimSpace(helpers.ValueOr(req.Aircraft, f.Aircraft))
	f.Prefix = strings.ToUpper(strings.TrimSpace(helpers.ValueOr(req.Prefix, f.Prefix)))
	f.Number = strings.TrimSpace(helpers.ValueOr(req.Number, f.Number))
	f.Departure = strings.ToUpper(strings.TrimSpace(helpers.ValueOr(req.Departure, f.Departure)))
	f.Arrival = strings.ToUpper(strings.TrimSpace(helpers.ValueOr(req.Arrival, f.Arrival)))
	if err := validateFlight(f); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, f); err != nil {
		return nil, err
	}

	if f.Date != previousDate {
		log := logger.FromContext(ctx)
		log.Info("flight baseline date changed", "flight_id", f.FlightID, "from", previousDate, "to", f.Date)
	}
	return f, nil
}

const (
	lockedFlightMessage       = "You cannot modify records or fields of a locked flight."
	lockedFlightCreateMessage = "You cannot create records for a locked flight."
)

// unlockOnly reports whether req does nothing but unlock the flight.
func unlockOnly(req dto.UpdateFlightRequest) bool {
	return req.Locked != nil && !*req.Locked &&
		req.Date == nil && req.Aircraft == nil && req.Prefix == nil && req.Number == nil &&
		req.Departure == nil && req.Arrival == nil
}

func validateFlight(f *models.Flight) error {
	if _, err := time.Parse(models.FlightDateLayout, f.Date); err != nil {
		return errs.NewValidationError("date must be YYYY-MM-DD")
	}
	if f.Aircraft == "" {
		return errs.NewValidationError("aircraft is required")
	}
	if f.Prefix != "" && f.Number == "" {
		return errs.NewValidationError("a flight prefix needs a number")
	}
	if len(f.Departure) != 4 || len(f.Arrival) != 4 {
		return errs.NewValidationError("departure and arrival must be ICAO codes")
	}
	return nil
}
