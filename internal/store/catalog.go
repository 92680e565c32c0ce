package store

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type eventCodeStore struct {
	client *firestore.Client
}

func NewEventCodeStore(client *firestore.Client) *eventCodeStore {
	return &eventCodeStore{client: client}
}

func (s *eventCodeStore) collection() *firestore.CollectionRef {
	return s.client.Collection("event_codes")
}

// List returns codes ordered by sequence, then id.
func (s *eventCodeStore) List(ctx context.Context) ([]models.EventCode, error) {
	docs, err := s.collection().Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list event codes", err)
	}
	out := make([]models.EventCode, 0, len(docs))
	for _, d := range docs {
		var c models.EventCode
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse event code data", err)
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].CodeID < out[j].CodeID
	})
	return out, nil
}

func (s *eventCodeStore) ExistsCode(ctx context.Context, code string) (bool, error) {
	docs, err := s.collection().Where("code", "==", code).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, errs.NewDatabaseError("read", "failed to look up event code", err)
	}
	return len(docs) > 0, nil
}

func (s *eventCodeStore) Upsert(ctx context.Context, c *models.EventCode) error {
	_, err := s.collection().Doc(c.CodeID).Set(ctx, c)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save event code", err)
	}
	return nil
}

type phaseStore struct {
	client *firestore.Client
}

func NewPhaseStore(client *firestore.Client) *phaseStore {
	return &phaseStore{client: client}
}

func (s *phaseStore) collection() *firestore.CollectionRef {
	return s.client.Collection("phases")
}

func (s *phaseStore) List(ctx context.Context) ([]models.Phase, error) {
	docs, err := s.collection().OrderBy("sequence", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list phases", err)
	}
	out := make([]models.Phase, 0, len(docs))
	for _, d := range docs {
		var p models.Phase
		if err := d.DataTo(&p); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse phase data", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *phaseStore) Upsert(ctx context.Context, p *models.Phase) error {
	_, err := s.collection().Doc(p.PhaseID).Set(ctx, p)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save phase", err)
	}
	return nil
}
