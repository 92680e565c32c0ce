package models

// TimeKind classifies an event time.
type TimeKind struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

const (
	TimeKindActual    = "A"
	TimeKindScheduled = "S"
	TimeKindRequested = "R"
	TimeKindTarget    = "T"
	TimeKindEstimated = "E"
)

// AllTimeKinds lists every kind an entry may be stored with.
var AllTimeKinds = []TimeKind{
	{Key: TimeKindActual, Label: "Actual"},
	{Key: TimeKindScheduled, Label: "Scheduled"},
	{Key: TimeKindRequested, Label: "Requested"},
	{Key: TimeKindTarget, Label: "Target"},
	{Key: TimeKindEstimated, Label: "Estimated"},
}

// MatrixTimeKinds are the columns of the event time matrix.
func MatrixTimeKinds() []TimeKind {
	return []TimeKind{
		{Key: TimeKindActual, Label: "Actual"},
		{Key: TimeKindScheduled, Label: "Scheduled"},
	}
}

func ValidTimeKind(key string) bool {
	for _, k := range AllTimeKinds {
		if k.Key == key {
			return true
		}
	}
	return false
}
