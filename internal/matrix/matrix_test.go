package matrix

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

func ts(day, hour, min int) *time.Time {
	t := time.Date(2024, time.January, day, hour, min, 0, 0, time.UTC)
	return &t
}

func testCodes() []models.EventCode {
	return []models.EventCode{
		{CodeID: "c1", Code: "OB", Name: "Off-Block"},
		{CodeID: "c2", Code: "TO", Name: "Take-Off"},
		{CodeID: "c3", Code: "LD", Name: "Landing"},
	}
}

func testEntries() []models.TimeEntry {
	return []models.TimeEntry{
		{EntryID: "e1", FlightID: "f1", CodeID: "c1", Code: "OB", TimeKind: "A", Time: ts(10, 8, 5)},
		{EntryID: "e2", FlightID: "f1", CodeID: "c2", Code: "TO", TimeKind: "S", Time: ts(10, 8, 30)},
		{EntryID: "e3", FlightID: "f1", CodeID: "c3", Code: "LD", TimeKind: "A", Time: ts(11, 1, 15)},
	}
}

func TestProjectFillsEveryCell(t *testing.T) {
	m := Project(nil, testCodes(), models.MatrixTimeKinds())

	if len(m) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m))
	}
	for _, code := range testCodes() {
		for _, kind := range models.MatrixTimeKinds() {
			cell := m.Cell(code.Code, kind.Key)
			if cell == nil {
				t.Fatalf("missing cell %s/%s", code.Code, kind.Key)
			}
			if !cell.Empty() || cell.Source != nil {
				t.Fatalf("cell %s/%s should be empty: %+v", code.Code, kind.Key, cell)
			}
		}
	}
}

func TestProjectPlacesEntries(t *testing.T) {
	m := Project(testEntries(), testCodes(), models.MatrixTimeKinds())

	cell := m.Cell("OB", "A")
	if cell.Empty() || !cell.Value.Equal(*ts(10, 8, 5)) {
		t.Fatalf("unexpected OB/A value: %+v", cell.Value)
	}
	if cell.Source == nil || cell.Source.EntryID != "e1" {
		t.Fatalf("unexpected OB/A source: %+v", cell.Source)
	}
	if !m.Cell("OB", "S").Empty() {
		t.Fatalf("OB/S should be empty")
	}
	if m.Cell("TO", "S").Source.EntryID != "e2" {
		t.Fatalf("unexpected TO/S source: %+v", m.Cell("TO", "S").Source)
	}
}

func TestProjectIgnoresUnknownCodesAndKinds(t *testing.T) {
	entries := append(testEntries(),
		models.TimeEntry{EntryID: "x1", CodeID: "c9", Code: "ZZ", TimeKind: "A", Time: ts(10, 9, 0)},
		models.TimeEntry{EntryID: "x2", CodeID: "c1", Code: "OB", TimeKind: "E", Time: ts(10, 9, 0)},
	)
	m := Project(entries, testCodes(), models.MatrixTimeKinds())

	if _, ok := m["ZZ"]; ok {
		t.Fatalf("unknown code should not create a row")
	}
	if m.Cell("OB", "E") != nil {
		t.Fatalf("unknown kind should not create a column")
	}
	if m.Cell("OB", "A").Source.EntryID != "e1" {
		t.Fatalf("known cell was overwritten: %+v", m.Cell("OB", "A").Source)
	}
}

func TestProjectOrderIndependent(t *testing.T) {
	entries := testEntries()
	reversed := make([]models.TimeEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}

	a := Project(entries, testCodes(), models.MatrixTimeKinds())
	b := Project(reversed, testCodes(), models.MatrixTimeKinds())

	for code, row := range a {
		for kind, cell := range row {
			other := b.Cell(code, kind)
			if Changed(cell.Value, other.Value) {
				t.Fatalf("cell %s/%s differs: %v vs %v", code, kind, cell.Value, other.Value)
			}
			if (cell.Source == nil) != (other.Source == nil) {
				t.Fatalf("cell %s/%s source presence differs", code, kind)
			}
			if cell.Source != nil && cell.Source.EntryID != other.Source.EntryID {
				t.Fatalf("cell %s/%s source differs: %s vs %s", code, kind, cell.Source.EntryID, other.Source.EntryID)
			}
		}
	}
}

func TestRowsFollowCodeAndKindOrder(t *testing.T) {
	m := Project(testEntries(), testCodes(), models.MatrixTimeKinds())
	rows := m.Rows(testCodes(), models.MatrixTimeKinds())

	if len(rows) != 3 || rows[0].Code.Code != "OB" || rows[2].Code.Code != "LD" {
		t.Fatalf("unexpected row order: %+v", rows)
	}
	if len(rows[1].Cells) != 2 || rows[1].Cells[0].Value != nil || rows[1].Cells[1].Value == nil {
		t.Fatalf("unexpected TO cells: %+v", rows[1].Cells)
	}
}

func TestCommitCreatesWhenNoMatch(t *testing.T) {
	entries := testEntries()
	code := testCodes()[1]
	kind := models.TimeKind{Key: "A", Label: "Actual"}

	mut, err := Commit(entries, code, kind, ts(10, 8, 40), "f1")
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if mut.Action != ActionCreate || !mut.Succeeded() {
		t.Fatalf("expected create, got %s", mut.Action)
	}
	e := mut.Entry
	if e.FlightID != "f1" || e.CodeID != "c2" || e.Code != "TO" || e.TimeKind != "A" {
		t.Fatalf("unexpected created entry: %+v", e)
	}
	if !e.Time.Equal(*ts(10, 8, 40)) {
		t.Fatalf("unexpected created time: %v", e.Time)
	}
	if len(entries) != 3 {
		t.Fatalf("entry list mutated: %d entries", len(entries))
	}
}

func TestCommitUpdatesSingleMatch(t *testing.T) {
	entries := testEntries()
	code := testCodes()[0]
	kind := models.TimeKind{Key: "A", Label: "Actual"}

	mut, err := Commit(entries, code, kind, ts(10, 8, 7), "f1")
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if mut.Action != ActionUpdate {
		t.Fatalf("expected update, got %s", mut.Action)
	}
	if mut.Entry.EntryID != "e1" || !mut.Entry.Time.Equal(*ts(10, 8, 7)) {
		t.Fatalf("unexpected updated entry: %+v", mut.Entry)
	}
	if mut.Previous == nil || !mut.Previous.Equal(*ts(10, 8, 5)) {
		t.Fatalf("Previous = %v, want the replaced time", mut.Previous)
	}
	if !entries[0].Time.Equal(*ts(10, 8, 5)) {
		t.Fatalf("source entry mutated: %v", entries[0].Time)
	}
	if entries[1].EntryID != "e2" || entries[2].EntryID != "e3" {
		t.Fatalf("other entries touched: %+v", entries)
	}
}

func TestCommitRejectsAmbiguousMatch(t *testing.T) {
	entries := append(testEntries(), models.TimeEntry{EntryID: "dup", CodeID: "c1", Code: "OB", TimeKind: "A", Time: ts(10, 8, 6)})
	code := testCodes()[0]
	kind := models.TimeKind{Key: "A", Label: "Actual"}

	mut, err := Commit(entries, code, kind, ts(10, 9, 0), "f1")
	if mut.Action != ActionReject || mut.Succeeded() || mut.Entry != nil {
		t.Fatalf("expected reject without entry, got %+v", mut)
	}
	var amb *errs.AmbiguousCellError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousCellError, got %v", err)
	}
	if amb.Matches != 2 || amb.Code != "OB" || amb.TimeKind != "A" {
		t.Fatalf("unexpected error detail: %+v", amb)
	}
	if !entries[0].Time.Equal(*ts(10, 8, 5)) || !entries[3].Time.Equal(*ts(10, 8, 6)) {
		t.Fatalf("entries mutated on reject")
	}
}

func TestCommitEmptyValueIsNoop(t *testing.T) {
	entries := testEntries()
	code := testCodes()[0]
	kind := models.TimeKind{Key: "A", Label: "Actual"}

	for _, v := range []*time.Time{nil, {}} {
		mut, err := Commit(entries, code, kind, v, "f1")
		if err != nil {
			t.Fatalf("Commit returned error: %v", err)
		}
		if mut.Action != ActionNone || mut.Entry != nil || mut.Succeeded() {
			t.Fatalf("expected no-op, got %+v", mut)
		}
	}
	if len(entries) != 3 || !entries[0].Time.Equal(*ts(10, 8, 5)) {
		t.Fatalf("entries changed by no-op commit")
	}
}

func TestChanged(t *testing.T) {
	base := ts(10, 14, 30)
	sameMinute := time.Date(2024, time.January, 10, 14, 30, 42, 0, time.UTC)
	otherZone := base.In(time.FixedZone("X", 2*3600))

	cases := []struct {
		name string
		a, b *time.Time
		want bool
	}{
		{"both empty", nil, nil, false},
		{"set from empty", nil, base, true},
		{"cleared", base, nil, true},
		{"same", base, ts(10, 14, 30), false},
		{"seconds ignored", base, &sameMinute, false},
		{"same instant other zone", base, &otherZone, false},
		{"different minute", base, ts(10, 14, 31), true},
		{"different day", base, ts(11, 14, 30), true},
	}
	for _, tc := range cases {
		if got := Changed(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: Changed = %v, want %v", tc.name, got, tc.want)
		}
	}
}
