package models

import (
	"fmt"
	"time"
)

// FlightDateLayout is the storage layout of Flight.Date.
const FlightDateLayout = "2006-01-02"

type Flight struct {
	FlightID  string    `firestore:"flightId" json:"flightId"`
	Date      string    `firestore:"date" json:"date"` // YYYY-MM-DD, scheduled date of flight
	Aircraft  string    `firestore:"aircraft" json:"aircraft"`
	Prefix    string    `firestore:"prefix,omitempty" json:"prefix,omitempty"` // airline designator, e.g. "LH"
	Number    string    `firestore:"number,omitempty" json:"number,omitempty"`
	Departure string    `firestore:"departure" json:"departure"` // ICAO
	Arrival   string    `firestore:"arrival" json:"arrival"`     // ICAO
	Locked    bool      `firestore:"locked" json:"locked"`       // event times and fields frozen
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Baseline returns the flight date as midnight in loc.
func (f *Flight) Baseline(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(FlightDateLayout, f.Date, loc)
}

// FlightNumber joins prefix and number, e.g. "LH400". Empty without a
// number.
func (f *Flight) FlightNumber() string {
	if f.Number == "" {
		return ""
	}
	return f.Prefix + f.Number
}

// DisplayName is "2024-05-01 / LH400" for numbered flights and
// "2024-05-01 / D-ABCD: EDDF - KJFK" otherwise.
func (f *Flight) DisplayName() string {
	if n := f.FlightNumber(); n != "" {
		return fmt.Sprintf("%s / %s", f.Date, n)
	}
	return fmt.Sprintf("%s / %s: %s - %s", f.Date, f.Aircraft, f.Departure, f.Arrival)
}
