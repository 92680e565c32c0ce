package models

import (
	"fmt"
	"time"
)

// Aerodrome is keyed by its ICAO identifier, which is unique.
type Aerodrome struct {
	ICAO      string  `firestore:"icao" json:"icao" yaml:"icao"`
	IATA      string  `firestore:"iata,omitempty" json:"iata,omitempty" yaml:"iata,omitempty"`
	Name      string  `firestore:"name" json:"name" yaml:"name"`
	City      string  `firestore:"city,omitempty" json:"city,omitempty" yaml:"city,omitempty"`
	Country   string  `firestore:"country,omitempty" json:"country,omitempty" yaml:"country,omitempty"` // ISO 3166 alpha-2
	Elevation int     `firestore:"elevation" json:"elevation" yaml:"elevation"`                         // feet
	Latitude  float64 `firestore:"latitude" json:"latitude" yaml:"latitude"`
	Longitude float64 `firestore:"longitude" json:"longitude" yaml:"longitude"`
	TZ        string  `firestore:"tz,omitempty" json:"tz,omitempty" yaml:"tz,omitempty"` // IANA name
}

// Location loads TZ. An aerodrome without a zone has a nil location.
func (a *Aerodrome) Location() (*time.Location, error) {
	if a.TZ == "" {
		return nil, nil
	}
	return time.LoadLocation(a.TZ)
}

// DisplayName is "EDDF(FRA) - Frankfurt Main", leaving out empty parts.
func (a *Aerodrome) DisplayName() string {
	id := a.ICAO
	if a.IATA != "" {
		id = fmt.Sprintf("%s(%s)", a.ICAO, a.IATA)
	}
	if a.Name == "" {
		return id
	}
	return id + " - " + a.Name
}
