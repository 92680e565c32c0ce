package reltime

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
)

// tail matches an optional trailing day offset or zone abbreviation.
var tail = regexp.MustCompile(`\s*(?:([+-]\d+)|([A-Z]{3,4}))\s*$`)

var errNotClock = errors.New("not HH:MM")

// Parse reads "HH:MM", "HH:MM +N", "HH:MM -N" or "HH:MM ZONE" against the
// baseline date (or today without one). Anything else goes through the
// absolute layouts. Failures return the zero time and an *errs.ParseError.
func (c *Codec) Parse(text string, opts Options) (time.Time, error) {
	clock, offset, zone := splitTail(text)

	hour, minute, err := parseClock(clock)
	if err != nil {
		return c.parseAbsolute(text, clock, zone, opts)
	}

	base := c.now().In(c.loc)
	if c.hasBaseline {
		base = c.baseline
	}
	y, m, d := base.Date()

	loc := base.Location()
	if zone != "" {
		loc, err = LookupZone(zone)
		if err != nil {
			return time.Time{}, errs.NewParseError(text, err)
		}
	}
	result := time.Date(y, m, d, hour, minute, 0, 0, loc)

	if offset != "" {
		days, err := strconv.Atoi(offset)
		if err != nil {
			return time.Time{}, errs.NewParseError(text, err)
		}
		result = result.AddDate(0, 0, days)
	}
	if err := c.checkYear(result); err != nil {
		return time.Time{}, errs.NewParseError(text, err)
	}
	return result, nil
}

func splitTail(text string) (clock, offset, zone string) {
	m := tail.FindStringSubmatchIndex(text)
	if m == nil {
		return text, "", ""
	}
	clock = text[:m[0]]
	if m[2] >= 0 {
		offset = text[m[2]:m[3]]
	}
	if m[4] >= 0 {
		zone = text[m[4]:m[5]]
	}
	return clock, offset, zone
}

func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, errNotClock
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, errNotClock
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errNotClock
	}
	return hour, minute, nil
}

func (c *Codec) parseAbsolute(text, head, zone string, opts Options) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, errs.NewParseError(text, errors.New("empty input"))
	}

	var lastErr error
	for _, layout := range opts.absoluteLayouts() {
		t, err := time.ParseInLocation(layout, trimmed, c.loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	// "2024-01-10 14:30 CEST"
	if zone != "" {
		loc, err := LookupZone(zone)
		if err != nil {
			return time.Time{}, errs.NewParseError(text, err)
		}
		for _, layout := range opts.absoluteLayouts() {
			t, err := time.ParseInLocation(layout, strings.TrimSpace(head), loc)
			if err == nil {
				return t, nil
			}
			lastErr = err
		}
	}
	return time.Time{}, errs.NewParseError(text, lastErr)
}
