package models

import "fmt"

// Status is the settlement state of a share.
type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusPaid      Status = "paid"
)

// Statuses lists every status in ascending rank order.
var Statuses = []Status{StatusRequested, StatusAccepted, StatusPaid}

// Rank returns the position of s in the total order requested(1) < accepted(2) < paid(3).
// Unknown statuses rank 0.
func (s Status) Rank() int {
	switch s {
	case StatusRequested:
		return 1
	case StatusAccepted:
		return 2
	case StatusPaid:
		return 3
	default:
		return 0
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.Rank() > 0
}

// Less reports whether s ranks strictly below other.
func (s Status) Less(other Status) bool {
	return s.Rank() < other.Rank()
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}
