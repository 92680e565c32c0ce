package services

import (
	"context"

	"github.com/GregMSThompson/flight-events/internal/catalog"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type catalogCodeStore interface {
	Upsert(ctx context.Context, c *models.EventCode) error
}

type catalogPhaseStore interface {
	Upsert(ctx context.Context, p *models.Phase) error
}

type catalogAerodromeStore interface {
	Upsert(ctx context.Context, a *models.Aerodrome) error
}

type catalogService struct {
	codes      catalogCodeStore
	phases     catalogPhaseStore
	aerodromes catalogAerodromeStore
}

func NewCatalogService(codes catalogCodeStore, phases catalogPhaseStore, aerodromes catalogAerodromeStore) *catalogService {
	return &catalogService{codes: codes, phases: phases, aerodromes: aerodromes}
}

// Seed upserts the catalog's event codes and phases by id and its
// aerodromes by ICAO identifier.
func (s *catalogService) Seed(ctx context.Context, c *catalog.Catalog) error {
	for i := range c.EventCodes {
		if err := s.codes.Upsert(ctx, &c.EventCodes[i]); err != nil {
			return err
		}
	}
	for i := range c.Phases {
		if err := s.phases.Upsert(ctx, &c.Phases[i]); err != nil {
			return err
		}
	}

	for i := range c.Aerodromes {
		if err := s.aerodromes.Upsert(ctx, &c.Aerodromes[i]); err != nil {
			return err
		}
	}

	log := logger.FromContext(ctx)
	log.Info("catalog seeded",
		"event_codes", len(c.EventCodes),
		"phases", len(c.Phases),
		"aerodromes", len(c.Aerodromes))
	return nil
}
