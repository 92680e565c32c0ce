package dto

import "github.com/GregMSThompson/flight-events/internal/models"

type CreateFlightRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Aircraft  string `json:"aircraft"`
	Prefix    string `json:"prefix,omitempty"`
	Number    string `json:"number,omitempty"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// UpdateFlightRequest patches a flight; nil fields are left unchanged.
type UpdateFlightRequest struct {
	Date      *string `json:"date,omitempty"`
	Aircraft  *string `json:"aircraft,omitempty"`
	Prefix    *string `json:"prefix,omitempty"`
	Number    *string `json:"number,omitempty"`
	Departure *string `json:"departure,omitempty"`
	Arrival   *string `json:"arrival,omitempty"`
	Locked    *bool   `json:"locked,omitempty"`
}

// Flight is the API view of a flight.
type Flight struct {
	models.Flight
	FlightNumber string `json:"flightNumber,omitempty"`
	DisplayName  string `json:"displayName"`
}

func NewFlight(f *models.Flight) Flight {
	return Flight{Flight: *f, FlightNumber: f.FlightNumber(), DisplayName: f.DisplayName()}
}

type CreateAerodromeRequest struct {
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata,omitempty"`
	Name      string  `json:"name"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Elevation int     `json:"elevation"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TZ        string  `json:"tz,omitempty"`
}

type CreateEventCodeRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Sequence    int    `json:"sequence"`
}

type PhaseDuration struct {
	Phase    string  `json:"phase"`
	Name     string  `json:"name"`
	TimeKind string  `json:"timeKind"`
	Start    string  `json:"start"` // RFC3339
	End      string  `json:"end"`
	Hours    float64 `json:"hours"`
}

type PhaseDurationsResponse struct {
	FlightID       string          `json:"flightId"`
	Phases         []PhaseDuration `json:"phases"`
	BlockDuration  float64         `json:"blockDuration"`
	FlightDuration float64         `json:"flightDuration"`
}
