package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/pkg/helpers"
)

type stubFlightStore struct {
	flights map[string]*models.Flight
	created int
	updated int
}

func newStubFlightStore() *stubFlightStore {
	return &stubFlightStore{flights: map[string]*models.Flight{}}
}

func (s *stubFlightStore) Create(_ context.Context, f *models.Flight) error {
	s.created++
	s.flights[f.FlightID] = f
	return nil
}

func (s *stubFlightStore) Get(_ context.Context, flightID string) (*models.Flight, error) {
	f, ok := s.flights[flightID]
	if !ok {
		return nil, errs.NewNotFoundError("flight not found")
	}
	cp := *f
	return &cp, nil
}

func (s *stubFlightStore) List(context.Context) ([]*models.Flight, error) {
	var out []*models.Flight
	for _, f := range s.flights {
		out = append(out, f)
	}
	return out, nil
}

func (s *stubFlightStore) Update(_ context.Context, f *models.Flight) error {
	s.updated++
	s.flights[f.FlightID] = f
	return nil
}

func TestFlightServiceCreateFlight(t *testing.T) {
	store := newStubFlightStore()
	svc := NewFlightService(store)

	f, err := svc.CreateFlight(helpers.TestCtx(), dto.CreateFlightRequest{
		Date:      "2024-05-01",
		Aircraft:  " D-ABCD ",
		Departure: "eddf",
		Arrival:   "KJFK",
	})
	if err != nil {
		t.Fatalf("CreateFlight returned error: %v", err)
	}
	if f.FlightID == "" {
		t.Fatalf("flight id was not assigned")
	}
	if f.Aircraft != "D-ABCD" || f.Departure != "EDDF" {
		t.Fatalf("fields were not normalised: %+v", f)
	}
	if store.created != 1 {
		t.Fatalf("Create called %d times, want 1", store.created)
	}
	if got := f.DisplayName(); got != "2024-05-01 / D-ABCD: EDDF - KJFK" {
		t.Fatalf("display name = %q", got)
	}
}

func TestFlightServiceCreateFlightValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateFlightRequest
	}{
		{"bad date", dto.CreateFlightRequest{Date: "01.05.2024", Aircraft: "D-ABCD", Departure: "EDDF", Arrival: "KJFK"}},
		{"no aircraft", dto.CreateFlightRequest{Date: "2024-05-01", Departure: "EDDF", Arrival: "KJFK"}},
		{"short airport", dto.CreateFlightRequest{Date: "2024-05-01", Aircraft: "D-ABCD", Departure: "FRA", Arrival: "KJFK"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubFlightStore()
			svc := NewFlightService(store)

			_, err := svc.CreateFlight(helpers.TestCtx(), tc.req)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if store.created != 0 {
				t.Fatalf("invalid flight must not be stored")
			}
		})
	}
}

func TestFlightServiceUpdateFlightDate(t *testing.T) {
	store := newStubFlightStore()
	store.flights["f1"] = &models.Flight{FlightID: "f1", Date: "2024-05-01", Aircraft: "D-ABCD", Departure: "EDDF", Arrival: "KJFK"}
	svc := NewFlightService(store)

	f, err := svc.UpdateFlight(helpers.TestCtx(), "f1", dto.UpdateFlightRequest{Date: helpers.Ptr("2024-05-02")})
	if err != nil {
		t.Fatalf("UpdateFlight returned error: %v", err)
	}
	if f.Date != "2024-05-02" || f.Aircraft != "D-ABCD" {
		t.Fatalf("unexpected flight after patch: %+v", f)
	}
	if store.updated != 1 {
		t.Fatalf("Update called %d times, want 1", store.updated)
	}
}

func TestFlightServiceUpdateFlightNotFound(t *testing.T) {
	svc := NewFlightService(newStubFlightStore())

	_, err := svc.UpdateFlight(helpers.TestCtx(), "missing", dto.UpdateFlightRequest{})
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFlightServiceLockedFlight(t *testing.T) {
	store := newStubFlightStore()
	store.flights["f1"] = &models.Flight{FlightID: "f1", Date: "2024-05-01", Aircraft: "D-ABCD", Departure: "EDDF", Arrival: "KJFK", Locked: true}
	svc := NewFlightService(store)

	_, err := svc.UpdateFlight(helpers.TestCtx(), "f1", dto.UpdateFlightRequest{Aircraft: helpers.Ptr("D-AIXX")})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.updated != 0 {
		t.Fatalf("Update called %d times, want 0", store.updated)
	}

	f, err := svc.UpdateFlight(helpers.TestCtx(), "f1", dto.UpdateFlightRequest{Locked: helpers.Ptr(false)})
	if err != nil {
		t.Fatalf("unlock returned error: %v", err)
	}
	if f.Locked {
		t.Fatalf("flight should be unlocked")
	}

	f, err = svc.UpdateFlight(helpers.TestCtx(), "f1", dto.UpdateFlightRequest{Aircraft: helpers.Ptr("D-AIXX"), Locked: helpers.Ptr(true)})
	if err != nil {
		t.Fatalf("UpdateFlight returned error: %v", err)
	}
	if f.Aircraft != "D-AIXX" || !f.Locked {
		t.Fatalf("unexpected flight after patch: %+v", f)
	}
}

func TestFlightServiceFlightNumber(t *testing.T) {
	store := newStubFlightStore()
	svc := NewFlightService(store)

	f, err := svc.CreateFlight(helpers.TestCtx(), dto.CreateFlightRequest{
		Date:      "2024-05-01",
		Aircraft:  "D-ABCD",
		Prefix:    " lh",
		Number:    "400 ",
		Departure: "EDDF",
		Arrival:   "KJFK",
	})
	if err != nil {
		t.Fatalf("CreateFlight returned error: %v", err)
	}
	if got := f.DisplayName(); got != "2024-05-01 / LH400" {
		t.Fatalf("display name = %q", got)
	}

	f, err = svc.UpdateFlight(helpers.TestCtx(), f.FlightID, dto.UpdateFlightRequest{Prefix: helpers.Ptr(""), Number: helpers.Ptr("")})
	if err != nil {
		t.Fatalf("UpdateFlight returned error: %v", err)
	}
	if got := f.DisplayName(); got != "2024-05-01 / D-ABCD: EDDF - KJFK" {
		t.Fatalf("display name = %q", got)
	}

	_, err = svc.UpdateFlight(helpers.TestCtx(), f.FlightID, dto.UpdateFlightRequest{Prefix: helpers.Ptr("LH")})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for a prefix without number, got %v", err)
	}
}
