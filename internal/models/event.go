package models

import (
	"time"
)

// EventCode identifies a flight event such as off-block or take-off.
type EventCode struct {
	CodeID      string `firestore:"codeId" json:"id" yaml:"id"`
	Code        string `firestore:"code" json:"code" yaml:"code"` // unique
	Name        string `firestore:"name" json:"name" yaml:"name"`
	Description string `firestore:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Sequence    int    `firestore:"sequence" json:"sequence" yaml:"sequence"`
}

// TimeEntry is a single stored event time of a flight. At most one entry
// exists per (flight, code, time kind).
type TimeEntry struct {
	EntryID   string     `firestore:"entryId" json:"id"`
	FlightID  string     `firestore:"flightId" json:"flightId"`
	CodeID    string     `firestore:"codeId" json:"codeId"`
	Code      string     `firestore:"code" json:"code"`
	TimeKind  string     `firestore:"timeKind" json:"timeKind"`
	Time      *time.Time `firestore:"time" json:"time"` // UTC
	UID       string     `firestore:"uid,omitempty" json:"uid,omitempty"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// Phase is a flight phase bounded by two event codes, e.g. Block runs from
// off-block to in-block.
type Phase struct {
	PhaseID   string `firestore:"phaseId" json:"id" yaml:"id"`
	Name      string `firestore:"name" json:"name" yaml:"name"`
	Sequence  int    `firestore:"sequence" json:"sequence" yaml:"sequence"`
	StartCode string `firestore:"startCode" json:"startCode" yaml:"start"`
	EndCode   string `firestore:"endCode" json:"endCode" yaml:"end"`
}

// Message is a change-tracking line posted on a flight.
type Message struct {
	MessageID string    `firestore:"messageId" json:"id"`
	UID       string    `firestore:"uid,omitempty" json:"uid,omitempty"`
	Body      string    `firestore:"body" json:"body"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type Notification struct {
	NotificationID string    `firestore:"notificationId" json:"id"`
	Type           string    `firestore:"type" json:"type"` // "danger", "info"
	Message        string    `firestore:"message" json:"message"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
}

const (
	NotificationDanger = "danger"
	NotificationInfo   = "info"
)
