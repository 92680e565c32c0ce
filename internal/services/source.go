package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flight-events/internal/models"
)

type eventTimeStore interface {
	List(ctx context.Context, flightID string) ([]models.TimeEntry, error)
	Create(ctx context.Context, e *models.TimeEntry) error
	UpdateTime(ctx context.Context, e *models.TimeEntry) error
}

// flightTimes is the record source of one flight's matrix. Writes go to
// Firestore first and are mirrored into the in-memory records on success.
type flightTimes struct {
	store    eventTimeStore
	flightID string
	uid      string

	mu      sync.Mutex
	records []models.TimeEntry
}

func newFlightTimes(store eventTimeStore, flightID, uid string, records []models.TimeEntry) *flightTimes {
	return &flightTimes{store: store, flightID: flightID, uid: uid, records: records}
}

func (s *flightTimes) Records() []models.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TimeEntry, len(s.records))
	copy(out, s.records)
	return out
}

func (s *flightTimes) Refresh(ctx context.Context) error {
	records, err := s.store.List(ctx, s.flightID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

func (s *flightTimes) Update(ctx context.Context, entry *models.TimeEntry) error {
	entry.UID = s.uid
	if err := s.store.UpdateTime(ctx, entry); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].EntryID == entry.EntryID {
			s.records[i] = *entry
		}
	}
	return nil
}

func (s *flightTimes) AddNew(ctx context.Context, entry *models.TimeEntry) error {
	if entry.EntryID == "" {
		entry.EntryID = uuid.New().String()
	}
	entry.FlightID = s.flightID
	entry.UID = s.uid
	if err := s.store.Create(ctx, entry); err != nil {
		return err
	}
	s.mu.Lock()
	s.records = append(s.records, *entry)
	s.mu.Unlock()
	return nil
}

// codeList serves event codes that were already loaded.
type codeList []models.EventCode

func (l codeList) SearchEventCodes(context.Context) ([]models.EventCode, error) {
	return l, nil
}
