// Package eventgrid is the editable event time matrix of a flight: it keeps
// the projection in sync with its record source and baseline date and turns
// cell edits into record updates or creations.
package eventgrid

import (
	"context"
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/matrix"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/picker"
	"github.com/GregMSThompson/flight-events/internal/reltime"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

const ambiguousMessage = "Multiple records found for the same event code and time kind"

// RecordSource owns the sparse event times of one flight.
type RecordSource interface {
	Records() []models.TimeEntry
	Update(ctx context.Context, entry *models.TimeEntry) error
	AddNew(ctx context.Context, entry *models.TimeEntry) error
}

// Refresher is implemented by sources that can re-read their records.
// Commit refreshes under the cell lock so serialised commits see each
// other's writes.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type CodeLookup interface {
	SearchEventCodes(ctx context.Context) ([]models.EventCode, error)
}

// Notifier surfaces user-facing messages. Delivery failures are the
// notifier's concern.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

type EventType string

const (
	EventProjected       EventType = "projected"
	EventBaselineChanged EventType = "baseline_changed"
	EventCommitted       EventType = "committed"
)

type Event struct {
	Type     EventType
	Matrix   matrix.Matrix
	Mutation *matrix.Mutation
}

type Grid struct {
	source   RecordSource
	notifier Notifier
	codec    *reltime.Codec
	format   reltime.Options
	locks    *CellLocks

	parentID string
	readonly bool
	codes    []models.EventCode
	kinds    []models.TimeKind
	matrix   matrix.Matrix

	onChange func(Event)
	setDirty func(bool)
}

type Option func(*Grid)

// WithParentID sets the flight new entries are attached to; it also scopes
// the cell locks.
func WithParentID(id string) Option {
	return func(g *Grid) { g.parentID = id }
}

func WithTimeKinds(kinds []models.TimeKind) Option {
	return func(g *Grid) { g.kinds = kinds }
}

func WithCodec(codec *reltime.Codec) Option {
	return func(g *Grid) { g.codec = codec }
}

func WithFormat(opts reltime.Options) Option {
	return func(g *Grid) { g.format = opts }
}

func WithCellLocks(locks *CellLocks) Option {
	return func(g *Grid) { g.locks = locks }
}

func Readonly(readonly bool) Option {
	return func(g *Grid) { g.readonly = readonly }
}

func OnChange(fn func(Event)) Option {
	return func(g *Grid) { g.onChange = fn }
}

// WithDirtyFunc receives false after every successful commit.
func WithDirtyFunc(fn func(bool)) Option {
	return func(g *Grid) { g.setDirty = fn }
}

// New loads the event codes once and projects the source records. The grid
// is usable only after New returns.
func New(ctx context.Context, lookup CodeLookup, source RecordSource, notifier Notifier, opts ...Option) (*Grid, error) {
	g := &Grid{
		source:   source,
		notifier: notifier,
		format:   reltime.DefaultOptions(),
		kinds:    models.MatrixTimeKinds(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.codec == nil {
		g.codec = reltime.New()
	}

	codes, err := lookup.SearchEventCodes(ctx)
	if err != nil {
		return nil, err
	}
	g.codes = codes
	g.matrix = matrix.Project(source.Records(), g.codes, g.kinds)
	return g, nil
}

func (g *Grid) EventCodes() []models.EventCode { return g.codes }
func (g *Grid) TimeKinds() []models.TimeKind { return g.kinds }
func (g *Grid) Matrix() matrix.Matrix { return g.matrix }
func (g *Grid) Codec() *reltime.Codec { return g.codec }
func (g *Grid) IsReadonly() bool { return g.readonly }

// SetBaseline re-syncs the relative codec with a new baseline date.
func (g *Grid) SetBaseline(date time.Time) {
	g.codec.SetBaseline(date)
	g.emit(Event{Type: EventBaselineChanged, Matrix: g.matrix})
}

// Reload re-projects after the record source changed.
func (g *Grid) Reload() {
	g.matrix = matrix.Project(g.source.Records(), g.codes, g.kinds)
	g.emit(Event{Type: EventProjected, Matrix: g.matrix})
}

// Display renders a cell relative to the baseline.
func (g *Grid) Display(code, kindKey string) (string, error) {
	cell := g.matrix.Cell(code, kindKey)
	if cell == nil || cell.Value == nil {
		return "", nil
	}
	return g.codec.Format(*cell.Value, g.format)
}

// Input parses text as a cell edit and commits it when it changes the cell.
// Blank text is a no-op.
func (g *Grid) Input(ctx context.Context, kindKey, code, text string) (matrix.Mutation, error) {
	cell := g.matrix.Cell(code, kindKey)
	if cell == nil {
		return matrix.Mutation{Action: matrix.ActionNone}, errs.NewNotFoundError("no cell for " + kindKey + "/" + code)
	}

	p := picker.NewRelative(g.codec, g.format)
	p.SetValue(cell.Value)
	changed, err := p.Input(text)
	if err != nil || !changed {
		return matrix.Mutation{Action: matrix.ActionNone}, err
	}
	return g.Commit(ctx, kindKey, code, p.Value())
}

// Update propagates a picked value unless it equals the current cell value.
func (g *Grid) Update(ctx context.Context, kindKey, code string, value *time.Time) (matrix.Mutation, error) {
	cell := g.matrix.Cell(code, kindKey)
	if cell == nil {
		return matrix.Mutation{Action: matrix.ActionNone}, errs.NewNotFoundError("no cell for " + kindKey + "/" + code)
	}
	if !matrix.Changed(cell.Value, value) {
		return matrix.Mutation{Action: matrix.ActionNone}, nil
	}
	return g.Commit(ctx, kindKey, code, value)
}

// Commit writes value into the (code, kind) cell: an update of the single
// matching record or a new record. Ambiguous cells are reported through the
// notifier and nothing is written.
func (g *Grid) Commit(ctx context.Context, kindKey, code string, value *time.Time) (matrix.Mutation, error) {
	none := matrix.Mutation{Action: matrix.ActionNone}
	if g.readonly {
		return none, errs.NewValidationError("event times are read-only")
	}
	eventCode, ok := g.findCode(code)
	if !ok {
		return none, errs.NewNotFoundError("unknown event code " + code)
	}
	kind, ok := g.findKind(kindKey)
	if !ok {
		return none, errs.NewNotFoundError("unknown time kind " + kindKey)
	}
	if value == nil || value.IsZero() {
		return none, nil
	}

	if g.locks != nil {
		unlock := g.locks.Lock(g.parentID + "/" + code + "/" + kindKey)
		defer unlock()
	}
	if r, ok := g.source.(Refresher); ok {
		if err := r.Refresh(ctx); err != nil {
			return none, err
		}
	}

	log := logger.FromContext(ctx)

	mut, err := matrix.Commit(g.source.Records(), eventCode, kind, value, g.parentID)
	if err != nil {
		log.Warn("event time commit rejected", "code", code, "time_kind", kindKey, "error", err)
		g.notifier.Notify(ctx, models.Notification{
			Type:    models.NotificationDanger,
			Message: ambiguousMessage,
		})
		return mut, err
	}
	if mut.Action == matrix.ActionUpdate && !matrix.Changed(mut.Previous, value) {
		// a serialised commit already stored this value
		g.matrix = matrix.Project(g.source.Records(), g.codes, g.kinds)
		return none, nil
	}

	switch mut.Action {
	case matrix.ActionUpdate:
		err = g.source.Update(ctx, mut.Entry)
	case matrix.ActionCreate:
		err = g.source.AddNew(ctx, mut.Entry)
	}
	if err != nil {
		log.Error("failed to write event time", "code", code, "time_kind", kindKey, "action", mut.Action, "error", err)
		return none, err
	}

	if g.setDirty != nil {
		g.setDirty(false)
	}
	log.Debug("event time committed", "code", code, "time_kind", kindKey, "action", mut.Action)

	g.matrix = matrix.Project(g.source.Records(), g.codes, g.kinds)
	g.emit(Event{Type: EventCommitted, Matrix: g.matrix, Mutation: &mut})
	return mut, nil
}

func (g *Grid) findCode(code string) (models.EventCode, bool) {
	for _, c := range g.codes {
		if c.Code == code {
			return c, true
		}
	}
	return models.EventCode{}, false
}

func (g *Grid) findKind(key string) (models.TimeKind, bool) {
	for _, k := range g.kinds {
		if k.Key == key {
			return k, true
		}
	}
	return models.TimeKind{}, false
}

func (g *Grid) emit(e Event) {
	if g.onChange != nil {
		g.onChange(e)
	}
}
