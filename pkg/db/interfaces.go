package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an update targets a record that does not exist
var ErrNotFound = errors.New("record not found")

// ShiftStore defines the interface for shift database operations
type ShiftStore interface {
	// ListShifts returns shifts with from <= date <= to. An empty bound is open.
	ListShifts(ctx context.Context, from, to string) ([]Shift, error)
	// UpsertShifts writes all shifts keyed by (staff, date) or none of them
	UpsertShifts(ctx context.Context, shifts []Shift) error
}

// StaffStore defines the interface for staff database operations
type StaffStore interface {
	ListStaff(ctx context.Context) ([]Staff, error)
	ReplaceStaff(ctx context.Context, staff []Staff) error
}

// CalendarStore defines the interface for calendar event database operations
type CalendarStore interface {
	ListEvents(ctx context.Context) ([]CalendarEvent, error)
	InsertEvent(ctx context.Context, event *CalendarEvent) error
}

// CycleStore defines the interface for scheduling cycle database operations
type CycleStore interface {
	ListCycles(ctx context.Context) ([]Cycle, error)
	InsertCycle(ctx context.Context, cycle *Cycle) error
	SetCycleConfirmed(ctx context.Context, id string, confirmed bool) error
}

// StationStore defines the interface for station list database operations
type StationStore interface {
	ListStations(ctx context.Context) ([]string, error)
	ReplaceStations(ctx context.Context, stations []string) error
}

// Database defines the interface for all database operations.
// The memory, postgres and sqlite backends implement this interface.
type Database interface {
	ShiftStore
	StaffStore
	CalendarStore
	CycleStore
	StationStore
	Close() error
}
