package allocator

import "errors"

var (
	// ErrCycleLocked is returned when a run's range intersects a confirmed scheduling cycle.
	// Nothing is computed or written.
	ErrCycleLocked = errors.New("date range intersects a confirmed scheduling cycle")

	// ErrInvalidRange is returned when the start date is after the end date
	ErrInvalidRange = errors.New("invalid date range: start is after end")

	// ErrNoEligibleCandidate is a slot-level condition. Passes absorb it and report the slot as unmet.
	ErrNoEligibleCandidate = errors.New("no eligible candidate")

	// ErrUnknownRole is returned when a role pass is asked for a role that does not exist
	ErrUnknownRole = errors.New("unknown role")
)
