package services

import (
	"context"
	"math"
	"time"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/models"
)

// Summary hours are taken from the phases with these names.
const (
	phaseBlock  = "Block"
	phaseFlight = "Flight"
)

type phaseLister interface {
	List(ctx context.Context) ([]models.Phase, error)
}

type entryLister interface {
	List(ctx context.Context, flightID string) ([]models.TimeEntry, error)
}

type phaseService struct {
	flights flightGetter
	phases  phaseLister
	times   entryLister
}

func NewPhaseService(flights flightGetter, phases phaseLister, times entryLister) *phaseService {
	return &phaseService{flights: flights, phases: phases, times: times}
}

// GetDurations computes each phase from the actual times of its start and
// end events. Phases missing either event are left out.
func (s *phaseService) GetDurations(ctx context.Context, flightID string) (dto.PhaseDurationsResponse, error) {
	if _, err := s.flights.Get(ctx, flightID); err != nil {
		return dto.PhaseDurationsResponse{}, err
	}
	phases, err := s.phases.List(ctx)
	if err != nil {
		return dto.PhaseDurationsResponse{}, err
	}
	entries, err := s.times.List(ctx, flightID)
	if err != nil {
		return dto.PhaseDurationsResponse{}, err
	}

	resp := dto.PhaseDurationsResponse{
		FlightID: flightID,
		Phases:   phaseDurations(phases, entries),
	}
	for _, d := range resp.Phases {
		switch d.Name {
		case phaseBlock:
			resp.BlockDuration = d.Hours
		case phaseFlight:
			resp.FlightDuration = d.Hours
		}
	}
	return resp, nil
}

func phaseDurations(phases []models.Phase, entries []models.TimeEntry) []dto.PhaseDuration {
	out := make([]dto.PhaseDuration, 0, len(phases))
	for _, p := range phases {
		start := actualTime(entries, p.StartCode)
		end := actualTime(entries, p.EndCode)
		if start == nil || end == nil {
			continue
		}
		out = append(out, dto.PhaseDuration{
			Phase:    p.PhaseID,
			Name:     p.Name,
			TimeKind: models.TimeKindActual,
			Start:    start.Format(time.RFC3339),
			End:      end.Format(time.RFC3339),
			Hours:    roundHours(end.Sub(*start)),
		})
	}
	return out
}

func actualTime(entries []models.TimeEntry, code string) *time.Time {
	for _, e := range entries {
		if e.Code == code && e.TimeKind == models.TimeKindActual && e.Time != nil {
			return e.Time
		}
	}
	return nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
