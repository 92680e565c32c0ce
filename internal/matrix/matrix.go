// Package matrix projects the sparse event times of a flight onto a dense
// event code × time kind grid and turns single-cell edits back into
// update/create mutations.
package matrix

import (
	"time"

	"github.com/GregMSThompson/flight-events/internal/models"
)

// Cell is one grid position. Value is nil for an empty cell.
type Cell struct {
	Value  *time.Time
	Source *models.TimeEntry
}

func (c *Cell) Empty() bool { return c.Value == nil }

// Matrix maps event code → time kind key → cell.
type Matrix map[string]map[string]*Cell

// Project builds the full grid for codes × kinds and fills it from entries.
// Entries whose code or kind has no column/row are ignored.
func Project(entries []models.TimeEntry, codes []models.EventCode, kinds []models.TimeKind) Matrix {
	m := make(Matrix, len(codes))
	for _, code := range codes {
		row := make(map[string]*Cell, len(kinds))
		for _, kind := range kinds {
			row[kind.Key] = &Cell{}
		}
		m[code.Code] = row
	}

	for i := range entries {
		entry := entries[i]
		row, ok := m[entry.Code]
		if !ok {
			continue
		}
		cell, ok := row[entry.TimeKind]
		if !ok {
			continue
		}
		cell.Value = entry.Time
		cell.Source = &entry
	}
	return m
}

// Cell returns the cell at code/kind or nil when the grid has no such position.
func (m Matrix) Cell(code, kind string) *Cell {
	row, ok := m[code]
	if !ok {
		return nil
	}
	return row[kind]
}

// Row is an ordered view of one event code's cells.
type Row struct {
	Code  models.EventCode
	Cells []*Cell // same order as the kinds passed to Rows
}

// Rows returns the grid in the order of codes and kinds.
func (m Matrix) Rows(codes []models.EventCode, kinds []models.TimeKind) []Row {
	rows := make([]Row, 0, len(codes))
	for _, code := range codes {
		row := Row{Code: code, Cells: make([]*Cell, 0, len(kinds))}
		for _, kind := range kinds {
			cell := m.Cell(code.Code, kind.Key)
			if cell == nil {
				cell = &Cell{}
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// Changed reports whether next differs from current at minute resolution.
// A re-fired picker value on blur compares equal and is not propagated.
func Changed(current, next *time.Time) bool {
	if current == nil || next == nil {
		return current != next
	}
	return !current.Truncate(time.Minute).Equal(next.Truncate(time.Minute))
}
