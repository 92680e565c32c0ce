// Package picker is a date/time input whose text rendering and parsing are
// pluggable strategies.
package picker

import (
	"strings"
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/matrix"
	"github.com/GregMSThompson/flight-events/internal/reltime"
)

// FormatFunc renders a value; a nil value renders as "".
type FormatFunc func(value *time.Time, layout string) (string, error)

// ParseFunc reads user input into a timestamp.
type ParseFunc func(text, layout string) (time.Time, error)

type DateTimePicker struct {
	format   FormatFunc
	parse    ParseFunc
	layout   string
	value    *time.Time
	onChange func(*time.Time)
}

type Option func(*DateTimePicker)

func WithLayout(layout string) Option {
	return func(p *DateTimePicker) { p.layout = layout }
}

// OnChange is called after Input stores a different value.
func OnChange(fn func(*time.Time)) Option {
	return func(p *DateTimePicker) { p.onChange = fn }
}

func New(format FormatFunc, parse ParseFunc, opts ...Option) *DateTimePicker {
	p := &DateTimePicker{format: format, parse: parse, layout: "2006-01-02 15:04"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewAbsolute renders and reads plain layouts in loc.
func NewAbsolute(loc *time.Location, opts ...Option) *DateTimePicker {
	format := func(value *time.Time, layout string) (string, error) {
		if value == nil || value.IsZero() {
			return "", nil
		}
		return value.In(loc).Format(layout), nil
	}
	parse := func(text, layout string) (time.Time, error) {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(text), loc)
		if err != nil {
			return time.Time{}, errs.NewParseError(text, err)
		}
		return t, nil
	}
	return New(format, parse, opts...)
}

// NewRelative renders and reads times relative to the codec's baseline.
// The codec is shared, so baseline updates apply to the picker immediately.
func NewRelative(codec *reltime.Codec, opts reltime.Options, pickerOpts ...Option) *DateTimePicker {
	format := func(value *time.Time, layout string) (string, error) {
		if value == nil {
			return "", nil
		}
		o := opts
		o.Layout = layout
		return codec.Format(*value, o)
	}
	parse := func(text, layout string) (time.Time, error) {
		o := opts
		o.Layout = layout
		return codec.Parse(text, o)
	}
	layout := opts.Layout
	if layout == "" {
		layout = reltime.DefaultLayout
	}
	return New(format, parse, append([]Option{WithLayout(layout)}, pickerOpts...)...)
}

func (p *DateTimePicker) Value() *time.Time { return p.value }

// SetValue replaces the value without firing OnChange.
func (p *DateTimePicker) SetValue(v *time.Time) { p.value = v }

func (p *DateTimePicker) Text() (string, error) {
	return p.format(p.value, p.layout)
}

// Input parses text and stores it when it differs from the current value.
// Blank input leaves the value untouched.
func (p *DateTimePicker) Input(text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	t, err := p.parse(text, p.layout)
	if err != nil {
		return false, err
	}
	if !matrix.Changed(p.value, &t) {
		return false, nil
	}
	p.value = &t
	if p.onChange != nil {
		p.onChange(p.value)
	}
	return true, nil
}
