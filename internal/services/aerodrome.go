package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type aerodromeStore interface {
	List(ctx context.Context) ([]models.Aerodrome, error)
	Get(ctx context.Context, icao string) (*models.Aerodrome, error)
	Create(ctx context.Context, a *models.Aerodrome) error
}

type aerodromeService struct {
	store aerodromeStore
}

func NewAerodromeService(store aerodromeStore) *aerodromeService {
	return &aerodromeService{store: store}
}

func (s *aerodromeService) ListAerodromes(ctx context.Context) ([]models.Aerodrome, error) {
	return s.store.List(ctx)
}

func (s *aerodromeService) GetAerodrome(ctx context.Context, icao string) (*models.Aerodrome, error) {
	return s.store.Get(ctx, strings.ToUpper(strings.TrimSpace(icao)))
}

func (s *aerodromeService) CreateAerodrome(ctx context.Context, req dto.CreateAerodromeRequest) (*models.Aerodrome, error) {
	a := &models.Aerodrome{
		ICAO:      strings.ToUpper(strings.TrimSpace(req.ICAO)),
		IATA:      strings.ToUpper(strings.TrimSpace(req.IATA)),
		Name:      strings.TrimSpace(req.Name),
		City:      strings.TrimSpace(req.City),
		Country:   strings.ToUpper(strings.TrimSpace(req.Country)),
		Elevation: req.Elevation,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		TZ:        strings.TrimSpace(req.TZ),
	}
	if len(a.ICAO) != 4 {
		return nil, errs.NewValidationError("icao must be a 4 letter identifier")
	}
	if a.IATA != "" && len(a.IATA) != 3 {
		return nil, errs.NewValidationError("iata must be a 3 letter identifier")
	}
	if _, err := a.Location(); err != nil {
		return nil, errs.NewValidationError("unknown time zone " + a.TZ)
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("aerodrome created", "icao", a.ICAO, "tz", a.TZ)
	return a, nil
}

// Location returns the time zone of the aerodrome, or nil when the
// aerodrome is unknown or has none.
func (s *aerodromeService) Location(ctx context.Context, icao string) (*time.Location, error) {
	a, err := s.store.Get(ctx, icao)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, err
	}
	loc, err := a.Location()
	if err != nil {
		logger.FromContext(ctx).Warn("aerodrome has an invalid time zone", "icao", icao, "tz", a.TZ, "error", err)
		return nil, nil
	}
	return loc, nil
}
