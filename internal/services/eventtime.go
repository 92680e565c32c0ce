package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/eventgrid"
	"github.com/GregMSThompson/flight-events/internal/matrix"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/internal/reltime"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type flightGetter interface {
	Get(ctx context.Context, flightID string) (*models.Flight, error)
}

type eventCodeLister interface {
	List(ctx context.Context) ([]models.EventCode, error)
}

type messageStore interface {
	AddMessage(ctx context.Context, flightID string, m *models.Message) error
	ListMessages(ctx context.Context, flightID string) ([]models.Message, error)
}

type userNotifiers interface {
	ForUser(uid string) eventgrid.Notifier
}

// zoneLocator resolves an aerodrome's time zone; nil means unknown.
type zoneLocator interface {
	Location(ctx context.Context, icao string) (*time.Location, error)
}

type eventTimeService struct {
	flights   flightGetter
	times     eventTimeStore
	codes     eventCodeLister
	messages  messageStore
	notifiers userNotifiers
	zones     zoneLocator
	locks     *eventgrid.CellLocks
	loc       *time.Location
	format    reltime.Options
}

func NewEventTimeService(
	flights flightGetter,
	times eventTimeStore,
	codes eventCodeLister,
	messages messageStore,
	notifiers userNotifiers,
	zones zoneLocator,
	loc *time.Location,
	layout string,
) *eventTimeService {
	format := reltime.DefaultOptions()
	if layout != "" {
		format.Layout = layout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &eventTimeService{
		flights:   flights,
		times:     times,
		codes:     codes,
		messages:  messages,
		notifiers: notifiers,
		zones:     zones,
		locks:     eventgrid.NewCellLocks(),
		loc:       loc,
		format:    format,
	}
}

type flightData struct {
	flight  *models.Flight
	entries []models.TimeEntry
	codes   []models.EventCode
}

func (s *eventTimeService) load(ctx context.Context, flightID string) (flightData, error) {
	var d flightData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := s.flights.Get(gctx, flightID)
		d.flight = f
		return err
	})
	g.Go(func() error {
		entries, err := s.times.List(gctx, flightID)
		d.entries = entries
		return err
	})
	g.Go(func() error {
		codes, err := s.codes.List(gctx)
		d.codes = codes
		return err
	})
	if err := g.Wait(); err != nil {
		return flightData{}, err
	}
	d.entries = validEntries(ctx, d.entries)
	return d, nil
}

// validEntries drops stored entries whose time kind is not a known one.
func validEntries(ctx context.Context, entries []models.TimeEntry) []models.TimeEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if !models.ValidTimeKind(e.TimeKind) {
			logger.FromContext(ctx).Warn("skipping event time with unknown time kind",
				"entry_id", e.EntryID, "time_kind", e.TimeKind)
			continue
		}
		out = append(out, e)
	}
	return out
}

// location is the departure aerodrome's time zone, falling back to the
// configured one.
func (s *eventTimeService) location(ctx context.Context, f *models.Flight) (*time.Location, error) {
	if s.zones == nil || f.Departure == "" {
		return s.loc, nil
	}
	loc, err := s.zones.Location(ctx, f.Departure)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return s.loc, nil
	}
	return loc, nil
}

func (s *eventTimeService) codec(ctx context.Context, f *models.Flight) (*reltime.Codec, error) {
	loc, err := s.location(ctx, f)
	if err != nil {
		return nil, err
	}
	baseline, err := f.Baseline(loc)
	if err != nil {
		return nil, errs.NewValidationError("flight has an invalid date")
	}
	c := reltime.New(reltime.WithLocation(loc))
	c.SetBaseline(baseline)
	return c, nil
}

func (s *eventTimeService) grid(ctx context.Context, uid string, d flightData) (*eventgrid.Grid, error) {
	codec, err := s.codec(ctx, d.flight)
	if err != nil {
		return nil, err
	}
	var notifier eventgrid.Notifier = logNotifier{}
	if uid != "" && s.notifiers != nil {
		notifier = s.notifiers.ForUser(uid)
	}
	source := newFlightTimes(s.times, d.flight.FlightID, uid, d.entries)
	return eventgrid.New(ctx, codeList(d.codes), source, notifier,
		eventgrid.WithParentID(d.flight.FlightID),
		eventgrid.WithCodec(codec),
		eventgrid.WithFormat(s.format),
		eventgrid.WithCellLocks(s.locks),
		eventgrid.Readonly(uid == "" || d.flight.Locked),
	)
}

// GetMatrix renders the flight's event times as code rows by time kind
// columns, relative to the flight date.
func (s *eventTimeService) GetMatrix(ctx context.Context, uid, flightID string) (dto.MatrixResponse, error) {
	d, err := s.load(ctx, flightID)
	if err != nil {
		return dto.MatrixResponse{}, err
	}
	g, err := s.grid(ctx, uid, d)
	if err != nil {
		return dto.MatrixResponse{}, err
	}

	log := logger.FromContext(ctx)
	resp := dto.MatrixResponse{
		FlightID:  d.flight.FlightID,
		Date:      d.flight.Date,
		Readonly:  g.IsReadonly(),
		TimeKinds: g.TimeKinds(),
		Rows:      make([]dto.MatrixRow, 0, len(g.EventCodes())),
	}
	for _, row := range g.Matrix().Rows(g.EventCodes(), g.TimeKinds()) {
		cells := make(map[string]dto.MatrixCell, len(row.Cells))
		for i, cell := range row.Cells {
			kind := g.TimeKinds()[i].Key
			display, err := g.Display(row.Code.Code, kind)
			if err != nil {
				log.Warn("failed to format event time", "code", row.Code.Code, "time_kind", kind, "error", err)
			}
			mc := dto.MatrixCell{Value: cell.Value, Display: display}
			if cell.Source != nil {
				mc.EntryID = cell.Source.EntryID
			}
			cells[kind] = mc
		}
		resp.Rows = append(resp.Rows, dto.MatrixRow{Code: row.Code, Cells: cells})
	}

	if logger.IsDebugEnabled(ctx) {
		log.Debug("matrix projected",
			"flight_id", flightID,
			"entries", len(d.entries),
			"populated", populatedCells(resp.Rows),
			"readonly", resp.Readonly)
	}
	return resp, nil
}

// CommitCell parses text typed into one cell and writes it as an update of
// the cell's record or a new record. A change message is posted on the
// flight for every write.
func (s *eventTimeService) CommitCell(ctx context.Context, uid, flightID, code, kind string, req dto.CommitCellRequest) (dto.CommitCellResponse, error) {
	_, ctx = logger.With(ctx, "flight_id", flightID)
	d, err := s.load(ctx, flightID)
	if err != nil {
		return dto.CommitCellResponse{}, err
	}
	if d.flight.Locked {
		msg := lockedFlightMessage
		if !hasEntry(d.entries, code, kind) {
			msg = lockedFlightCreateMessage
		}
		return dto.CommitCellResponse{Action: string(matrix.ActionNone)}, errs.NewValidationError(msg)
	}
	g, err := s.grid(ctx, uid, d)
	if err != nil {
		return dto.CommitCellResponse{}, err
	}

	mut, err := g.Input(ctx, kind, code, req.Value)
	if err != nil {
		return dto.CommitCellResponse{Action: string(mut.Action)}, err
	}
	if !mut.Succeeded() {
		return dto.CommitCellResponse{Action: string(matrix.ActionNone)}, nil
	}

	display, err := g.Display(code, kind)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to format event time", "code", code, "time_kind", kind, "error", err)
	}
	entry := eventTimeView(g.Codec(), *mut.Entry)
	s.trackChange(ctx, uid, flightID, mut.Action, entry, mut.Previous, g.Codec())

	return dto.CommitCellResponse{
		Action:  string(mut.Action),
		Entry:   &entry,
		Display: display,
	}, nil
}

// trackChange posts a change message on the flight. A failure is logged
// only; the event time itself is already stored.
func (s *eventTimeService) trackChange(ctx context.Context, uid, flightID string, action matrix.Action, entry dto.EventTime, previous *time.Time, codec *reltime.Codec) {
	var body string
	switch action {
	case matrix.ActionCreate:
		body = fmt.Sprintf("Event Times Updated: Added %s", entry.DisplayName)
	case matrix.ActionUpdate:
		from := ""
		if previous != nil {
			from = codec.DisplayTime(*previous)
		}
		body = fmt.Sprintf("Event Times Updated: %s%sT time changed from %s to %s",
			entry.TimeKind, entry.Code, from, entry.DisplayTime)
	default:
		return
	}

	m := &models.Message{
		MessageID: uuid.New().String(),
		UID:       uid,
		Body:      body,
	}
	if err := s.messages.AddMessage(ctx, flightID, m); err != nil {
		log := logger.FromContext(ctx)
		log.Error("failed to post change message", "flight_id", flightID, "error", err)
	}
}

// ListEntries returns the stored event times of a flight ordered by event
// code sequence, then time kind.
func (s *eventTimeService) ListEntries(ctx context.Context, flightID string) ([]dto.EventTime, error) {
	d, err := s.load(ctx, flightID)
	if err != nil {
		return nil, err
	}
	codec, err := s.codec(ctx, d.flight)
	if err != nil {
		return nil, err
	}

	sequence := make(map[string]int, len(d.codes))
	for _, c := range d.codes {
		sequence[c.CodeID] = c.Sequence
	}
	entries := append([]models.TimeEntry(nil), d.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := sequence[entries[i].CodeID], sequence[entries[j].CodeID]
		if si != sj {
			return si < sj
		}
		return entries[i].TimeKind < entries[j].TimeKind
	})

	out := make([]dto.EventTime, 0, len(entries))
	for _, e := range entries {
		out = append(out, eventTimeView(codec, e))
	}
	return out, nil
}

func (s *eventTimeService) ListMessages(ctx context.Context, flightID string) ([]models.Message, error) {
	if _, err := s.flights.Get(ctx, flightID); err != nil {
		return nil, err
	}
	return s.messages.ListMessages(ctx, flightID)
}

// eventTimeView adds the relative display fields, e.g. "ATOT 23:10 (+1)".
func eventTimeView(codec *reltime.Codec, e models.TimeEntry) dto.EventTime {
	var display string
	if e.Time != nil {
		display = codec.DisplayTime(*e.Time)
	}
	name := strings.ToUpper(fmt.Sprintf("%s%sT %s", e.TimeKind, e.Code, display))
	return dto.EventTime{
		TimeEntry:   e,
		DisplayTime: display,
		DisplayName: strings.TrimSpace(name),
	}
}

func hasEntry(entries []models.TimeEntry, code, kind string) bool {
	for _, e := range entries {
		if e.Code == code && e.TimeKind == kind {
			return true
		}
	}
	return false
}

func populatedCells(rows []dto.MatrixRow) int {
	n := 0
	for _, r := range rows {
		for _, c := range r.Cells {
			if c.Value != nil {
				n++
			}
		}
	}
	return n
}

// logNotifier is used for read-only grids, which never commit.
type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, n models.Notification) {
	logger.FromContext(ctx).Warn("notification without recipient", "type", n.Type, "message", n.Message)
}
