package picker

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/reltime"
)

func TestRelativePickerInputAndText(t *testing.T) {
	codec := reltime.New()
	codec.SetBaseline(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	var changes []*time.Time
	p := NewRelative(codec, reltime.DefaultOptions(), OnChange(func(v *time.Time) {
		changes = append(changes, v)
	}))

	changed, err := p.Input("01:15 +1")
	if err != nil || !changed {
		t.Fatalf("Input = (%v, %v), want (true, nil)", changed, err)
	}
	want := time.Date(2024, time.January, 11, 1, 15, 0, 0, time.UTC)
	if p.Value() == nil || !p.Value().Equal(want) {
		t.Fatalf("Value = %v, want %v", p.Value(), want)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change callback, got %d", len(changes))
	}

	text, err := p.Text()
	if err != nil || text != "01:15 +1" {
		t.Fatalf("Text = (%q, %v)", text, err)
	}
}

func TestRelativePickerFollowsBaseline(t *testing.T) {
	codec := reltime.New()
	codec.SetBaseline(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	p := NewRelative(codec, reltime.DefaultOptions())
	v := time.Date(2024, time.January, 11, 1, 15, 0, 0, time.UTC)
	p.SetValue(&v)

	codec.SetBaseline(time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC))
	text, err := p.Text()
	if err != nil || text != "01:15" {
		t.Fatalf("Text after baseline change = (%q, %v)", text, err)
	}
}

func TestPickerSameValueDoesNotFire(t *testing.T) {
	codec := reltime.New()
	codec.SetBaseline(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	fired := 0
	p := NewRelative(codec, reltime.DefaultOptions(), OnChange(func(*time.Time) { fired++ }))
	v := time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC)
	p.SetValue(&v)

	changed, err := p.Input("14:30")
	if err != nil || changed || fired != 0 {
		t.Fatalf("Input of same value = (%v, %v), fired %d", changed, err, fired)
	}
}

func TestPickerBlankAndInvalidInput(t *testing.T) {
	p := NewAbsolute(time.UTC)

	changed, err := p.Input("   ")
	if err != nil || changed || p.Value() != nil {
		t.Fatalf("blank Input = (%v, %v), value %v", changed, err, p.Value())
	}

	changed, err = p.Input("yesterday-ish")
	var pe *errs.ParseError
	if changed || !errors.As(err, &pe) {
		t.Fatalf("invalid Input = (%v, %v)", changed, err)
	}
}

func TestAbsolutePicker(t *testing.T) {
	p := NewAbsolute(time.UTC, WithLayout("02.01.2006 15:04"))

	if text, err := p.Text(); err != nil || text != "" {
		t.Fatalf("empty Text = (%q, %v)", text, err)
	}
	if _, err := p.Input("05.03.2024 10:00"); err != nil {
		t.Fatalf("Input returned error: %v", err)
	}
	text, err := p.Text()
	if err != nil || text != "05.03.2024 10:00" {
		t.Fatalf("Text = (%q, %v)", text, err)
	}
}
