package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type eventTimeStore struct {
	client *firestore.Client
}

func NewEventTimeStore(client *firestore.Client) *eventTimeStore {
	return &eventTimeStore{client: client}
}

func (s *eventTimeStore) collection(flightID string) *firestore.CollectionRef {
	return s.client.Collection("flights").Doc(flightID).Collection("event_times")
}

func (s *eventTimeStore) List(ctx context.Context, flightID string) ([]models.TimeEntry, error) {
	docs, err := s.collection(flightID).
		OrderBy("codeId", firestore.Asc).
		OrderBy("timeKind", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list event times", err)
	}
	entries := make([]models.TimeEntry, 0, len(docs))
	for _, d := range docs {
		var e models.TimeEntry
		if err := d.DataTo(&e); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse event time data", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *eventTimeStore) Create(ctx context.Context, e *models.TimeEntry) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	_, err := s.collection(e.FlightID).Doc(e.EntryID).Create(ctx, e)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create event time", err)
	}
	return nil
}

// UpdateTime writes only the time and audit fields so a concurrent edit of
// another field is not overwritten.
func (s *eventTimeStore) UpdateTime(ctx context.Context, e *models.TimeEntry) error {
	e.UpdatedAt = time.Now()
	_, err := s.collection(e.FlightID).Doc(e.EntryID).Update(ctx, []firestore.Update{
		{Path: "time", Value: e.Time},
		{Path: "uid", Value: e.UID},
		{Path: "updatedAt", Value: e.UpdatedAt},
	})
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update event time", err)
	}
	return nil
}
