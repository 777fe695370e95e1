package models

// StatusValue is the closed set of enrollment lifecycle stages.
type StatusValue string

// Lifecycle stages, in transition order.
const (
	StatusProvisional StatusValue = "PROVISIONAL"
	StatusConfirmed   StatusValue = "CONFIRMED"
	StatusInProgress  StatusValue = "IN_PROGRESS"
	StatusCompleted   StatusValue = "COMPLETED"
)

// statusFlow is the linear transition chain. COMPLETED is terminal and
// has no entry.
var statusFlow = map[StatusValue]StatusValue{
	StatusProvisional: StatusConfirmed,
	StatusConfirmed:   StatusInProgress,
	StatusInProgress:  StatusCompleted,
}

// Valid reports whether s is a member of the closed status set.
func (s StatusValue) Valid() bool {
	switch s {
	case StatusProvisional, StatusConfirmed, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next returns the only status reachable from s, and false when s is
// terminal or unknown.
func (s StatusValue) Next() (StatusValue, bool) {
	next, ok := statusFlow[s]
	return next, ok
}
