package dto

import (
	"time"

	"github.com/GregMSThompson/flight-events/internal/models"
)

// MatrixCell is one rendered cell of the event time matrix.
type MatrixCell struct {
	Value   *time.Time `json:"value"`
	Display string     `json:"display"`
	EntryID string     `json:"entryId,omitempty"`
}

type MatrixRow struct {
	Code  models.EventCode      `json:"code"`
	Cells map[string]MatrixCell `json:"cells"` // keyed by time kind
}

type MatrixResponse struct {
	FlightID  string            `json:"flightId"`
	Date      string            `json:"date"`
	Readonly  bool              `json:"readonly"`
	TimeKinds []models.TimeKind `json:"timeKinds"`
	Rows      []MatrixRow       `json:"rows"`
}

// CommitCellRequest carries the text typed into a cell, e.g. "01:15 +1".
type CommitCellRequest struct {
	Value string `json:"value"`
}

type CommitCellResponse struct {
	Action  string     `json:"action"`
	Entry   *EventTime `json:"entry,omitempty"`
	Display string     `json:"display,omitempty"`
}

type EventTime struct {
	models.TimeEntry
	DisplayTime string `json:"displayTime"`
	DisplayName string `json:"displayName"`
}
