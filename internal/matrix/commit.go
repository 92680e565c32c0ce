package matrix

import (
	"time"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type Action string

const (
	ActionNone   Action = "none"
	ActionUpdate Action = "update"
	ActionCreate Action = "create"
	ActionReject Action = "reject"
)

// Mutation is the change Commit proposes against the sparse entry list.
// Entry is a copy: the target with its new time for updates, the new entry
// for creates, nil otherwise. Previous is the target's time before an
// update.
type Mutation struct {
	Action   Action
	Entry    *models.TimeEntry
	Previous *time.Time
}

// Succeeded reports whether the caller should persist Entry and clear its
// pending-edit flag.
func (m Mutation) Succeeded() bool {
	return m.Action == ActionUpdate || m.Action == ActionCreate
}

// Commit resolves an edit of the (code, kind) cell. A nil or zero value is
// a no-op, never a request to clear the cell. More than one matching entry
// is rejected with an *errs.AmbiguousCellError.
func Commit(entries []models.TimeEntry, code models.EventCode, kind models.TimeKind, value *time.Time, parentID string) (Mutation, error) {
	if value == nil || value.IsZero() {
		return Mutation{Action: ActionNone}, nil
	}

	var matches []models.TimeEntry
	for _, e := range entries {
		if e.CodeID == code.CodeID && e.TimeKind == kind.Key {
			matches = append(matches, e)
		}
	}

	t := *value
	switch len(matches) {
	case 0:
		return Mutation{
			Action: ActionCreate,
			Entry: &models.TimeEntry{
				FlightID: parentID,
				CodeID:   code.CodeID,
				Code:     code.Code,
				TimeKind: kind.Key,
				Time:     &t,
			},
		}, nil
	case 1:
		entry := matches[0]
		var previous *time.Time
		if entry.Time != nil {
			p := *entry.Time
			previous = &p
		}
		entry.Time = &t
		return Mutation{Action: ActionUpdate, Entry: &entry, Previous: previous}, nil
	default:
		return Mutation{Action: ActionReject}, errs.NewAmbiguousCellError(code.Code, kind.Key, len(matches))
	}
}
