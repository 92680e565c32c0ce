package reltime

import (
	"fmt"
	"time"
)

const secondsPerHour = 60 * 60

// abbreviations resolves zone tokens the tz database does not know.
var abbreviations = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"WET":  0,
	"WEST": 1 * secondsPerHour,
	"BST":  1 * secondsPerHour,
	"CET":  1 * secondsPerHour,
	"CEST": 2 * secondsPerHour,
	"EET":  2 * secondsPerHour,
	"EEST": 3 * secondsPerHour,
	"MSK":  3 * secondsPerHour,
	"JST":  9 * secondsPerHour,
	"AEST": 10 * secondsPerHour,
	"AEDT": 11 * secondsPerHour,
	"EST":  -5 * secondsPerHour,
	"EDT":  -4 * secondsPerHour,
	"CST":  -6 * secondsPerHour,
	"CDT":  -5 * secondsPerHour,
	"MST":  -7 * secondsPerHour,
	"MDT":  -6 * secondsPerHour,
	"PST":  -8 * secondsPerHour,
	"PDT":  -7 * secondsPerHour,
}

// LookupZone resolves a zone token, first as a fixed-offset abbreviation and
// then as a tz database name.
func LookupZone(name string) (*time.Location, error) {
	if offset, ok := abbreviations[name]; ok {
		return time.FixedZone(name, offset), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q", name)
	}
	return loc, nil
}
