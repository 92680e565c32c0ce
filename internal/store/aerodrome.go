package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type aerodromeStore struct {
	client *firestore.Client
}

func NewAerodromeStore(client *firestore.Client) *aerodromeStore {
	return &aerodromeStore{client: client}
}

// Documents are keyed by ICAO identifier.
func (s *aerodromeStore) collection() *firestore.CollectionRef {
	return s.client.Collection("aerodromes")
}

func (s *aerodromeStore) List(ctx context.Context) ([]models.Aerodrome, error) {
	docs, err := s.collection().OrderBy("icao", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list aerodromes", err)
	}
	out := make([]models.Aerodrome, 0, len(docs))
	for _, d := range docs {
		var a models.Aerodrome
		if err := d.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse aerodrome data", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *aerodromeStore) Get(ctx context.Context, icao string) (*models.Aerodrome, error) {
	doc, err := s.collection().Doc(icao).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("aerodrome not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get aerodrome", err)
	}
	var a models.Aerodrome
	if err := doc.DataTo(&a); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse aerodrome data", err)
	}
	return &a, nil
}

func (s *aerodromeStore) Create(ctx context.Context, a *models.Aerodrome) error {
	_, err := s.collection().Doc(a.ICAO).Create(ctx, a)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("Aerodrome with this ICAO already exists!")
		}
		return errs.NewDatabaseError("create", "failed to create aerodrome", err)
	}
	return nil
}

func (s *aerodromeStore) Upsert(ctx context.Context, a *models.Aerodrome) error {
	_, err := s.collection().Doc(a.ICAO).Set(ctx, a)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save aerodrome", err)
	}
	return nil
}
