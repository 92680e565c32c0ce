package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type flightStore struct {
	client *firestore.Client
}

func NewFlightStore(client *firestore.Client) *flightStore {
	return &flightStore{client: client}
}

func (s *flightStore) collection() *firestore.CollectionRef {
	return s.client.Collection("flights")
}

func (s *flightStore) Create(ctx context.Context, f *models.Flight) error {
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	_, err := s.collection().Doc(f.FlightID).Create(ctx, f)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("flight already exists")
		}
		return errs.NewDatabaseError("create", "failed to create flight", err)
	}
	return nil
}

func (s *flightStore) Get(ctx context.Context, flightID string) (*models.Flight, error) {
	doc, err := s.collection().Doc(flightID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("flight not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get flight", err)
	}
	var f models.Flight
	if err := doc.DataTo(&f); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse flight data", err)
	}
	return &f, nil
}

func (s *flightStore) List(ctx context.Context) ([]*models.Flight, error) {
	docs, err := s.collection().OrderBy("date", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list flights", err)
	}
	flights := make([]*models.Flight, 0, len(docs))
	for _, d := range docs {
		var f models.Flight
		if err := d.DataTo(&f); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse flight data", err)
		}
		flights = append(flights, &f)
	}
	return flights, nil
}

func (s *flightStore) Update(ctx context.Context, f *models.Flight) error {
	f.UpdatedAt = time.Now()
	_, err := s.collection().Doc(f.FlightID).Set(ctx, f)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update flight", err)
	}
	return nil
}
