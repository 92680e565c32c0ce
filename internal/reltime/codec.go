// Package reltime renders and reads clock times relative to a baseline date,
// e.g. "01:15 +1" for a landing the day after the scheduled flight date.
package reltime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
)

// Placeholder marks where the signed day offset goes in a layout.
const Placeholder = "%R"

const DefaultLayout = "15:04 " + Placeholder

// DefaultAbsoluteLayouts are tried in order when input is not HH:MM shorthand.
var DefaultAbsoluteLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

type Options struct {
	Layout          string
	AbsoluteLayouts []string
}

func DefaultOptions() Options {
	return Options{Layout: DefaultLayout, AbsoluteLayouts: DefaultAbsoluteLayouts}
}

func (o Options) absoluteLayouts() []string {
	if len(o.AbsoluteLayouts) == 0 {
		return DefaultAbsoluteLayouts
	}
	return o.AbsoluteLayouts
}

// Codec formats and parses relative times. The baseline is mutable and must
// be re-synced by the owner whenever the underlying date changes.
type Codec struct {
	loc         *time.Location
	now         func() time.Time
	baseline    time.Time
	hasBaseline bool
}

type Option func(*Codec)

// WithLocation sets the display location. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *Codec) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithClock replaces time.Now as the base for input without a baseline.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

func New(opts ...Option) *Codec {
	c := &Codec{loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Location() *time.Location { return c.loc }

// SetBaseline keeps only the calendar day of date.
func (c *Codec) SetBaseline(date time.Time) {
	y, m, d := date.Date()
	c.baseline = time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	c.hasBaseline = true
}

func (c *Codec) ClearBaseline() {
	c.baseline = time.Time{}
	c.hasBaseline = false
}

// Baseline returns the baseline date and whether one is set.
func (c *Codec) Baseline() (time.Time, bool) {
	return c.baseline, c.hasBaseline
}

// RelativeDays is the calendar-day difference between ts and the baseline,
// ignoring time of day. Zero without a baseline.
func (c *Codec) RelativeDays(ts time.Time) int {
	if !c.hasBaseline {
		return 0
	}
	return daysBetween(c.baseline, ts.In(c.loc))
}

// OffsetText is the value substituted for Placeholder: "" on the baseline
// day, otherwise "+N" or "-N".
func (c *Codec) OffsetText(ts time.Time) string {
	days := c.RelativeDays(ts)
	switch {
	case days > 0:
		return "+" + strconv.Itoa(days)
	case days < 0:
		return strconv.Itoa(days)
	default:
		return ""
	}
}

// Format renders ts with opts.Layout. A zero ts yields "". Errors come back
// with an empty fallback value.
func (c *Codec) Format(ts time.Time, opts Options) (string, error) {
	if ts.IsZero() {
		return "", nil
	}
	layout := opts.Layout
	if layout == "" {
		return "", errs.NewFormatError("empty layout", nil)
	}
	if err := c.checkYear(ts); err != nil {
		return "", errs.NewFormatError("invalid timestamp", err)
	}

	out := ts.In(c.loc).Format(layout)
	if strings.Contains(layout, Placeholder) {
		out = strings.ReplaceAll(out, Placeholder, c.OffsetText(ts))
		out = strings.TrimRight(out, " ")
	}
	return out, nil
}

// DisplayTime is the read-only rendering of a stored event time, e.g.
// "01:15 (+1)". Empty without a baseline.
func (c *Codec) DisplayTime(ts time.Time) string {
	if ts.IsZero() || !c.hasBaseline {
		return ""
	}
	out := ts.In(c.loc).Format("15:04")
	if days := c.RelativeDays(ts); days != 0 {
		out += " (" + c.OffsetText(ts) + ")"
	}
	return out
}

// checkYear rejects timestamps whose local year does not fit four digits.
func (c *Codec) checkYear(ts time.Time) error {
	if y := ts.In(c.loc).Year(); y < 0 || y > 9999 {
		return fmt.Errorf("year %d out of range", y)
	}
	return nil
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / 86400)
}
