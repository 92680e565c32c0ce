package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type eventCodeStore interface {
	List(ctx context.Context) ([]models.EventCode, error)
	ExistsCode(ctx context.Context, code string) (bool, error)
	Upsert(ctx context.Context, c *models.EventCode) error
}

type eventCodeService struct {
	store eventCodeStore
}

func NewEventCodeService(store eventCodeStore) *eventCodeService {
	return &eventCodeService{store: store}
}

func (s *eventCodeService) ListEventCodes(ctx context.Context) ([]models.EventCode, error) {
	return s.store.List(ctx)
}

func (s *eventCodeService) CreateEventCode(ctx context.Context, req dto.CreateEventCodeRequest) (*models.EventCode, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, errs.NewValidationError("code and name are required")
	}

	exists, err := s.store.ExistsCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewAlreadyExistsError("The event code must be unique!")
	}

	sequence := req.Sequence
	if sequence == 0 {
		sequence = 10
	}
	c := &models.EventCode{
		CodeID:      uuid.New().String(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Sequence:    sequence,
	}
	if err := s.store.Upsert(ctx, c); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("event code created", "code", c.Code, "code_id", c.CodeID)
	return c, nil
}

// TimeKinds lists every kind an event time can be stored with.
func (s *eventCodeService) TimeKinds() []models.TimeKind {
	return models.AllTimeKinds
}
