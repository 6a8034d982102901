package db

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
)

type shiftKey struct {
	staffID string
	date    string
}

// MemoryStore is an in-process Database used by the memory backend and in tests.
// Every write is applied under one lock so a batch is never partially visible.
type MemoryStore struct {
	mu       sync.RWMutex
	shifts   map[shiftKey]Shift
	staff    []Staff
	events   []CalendarEvent
	cycles   []Cycle
	stations []string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{shifts: make(map[shiftKey]Shift)}
}

// ListShifts returns shifts in the range ordered by date then staff ID
func (m *MemoryStore) ListShifts(ctx context.Context, from, to string) ([]Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var shifts []Shift
	for _, s := range m.shifts {
		if from != "" && s.ShiftDate < from {
			continue
		}
		if to != "" && s.ShiftDate > to {
			continue
		}
		shifts = append(shifts, copyShift(s))
	}

	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].ShiftDate != shifts[j].ShiftDate {
			return shifts[i].ShiftDate < shifts[j].ShiftDate
		}
		return shifts[i].StaffID < shifts[j].StaffID
	})

	return shifts, nil
}

// UpsertShifts replaces the stored shift for each (staff, date) key
func (m *MemoryStore) UpsertShifts(ctx context.Context, shifts []Shift) error {
	for _, s := range shifts {
		if s.StaffID == "" || s.ShiftDate == "" {
			return fmt.Errorf("failed to upsert shift: staff ID and date are required")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range shifts {
		m.shifts[shiftKey{staffID: s.StaffID, date: s.ShiftDate}] = copyShift(s)
	}
	return nil
}

// ListStaff returns staff in the order they were stored
func (m *MemoryStore) ListStaff(ctx context.Context) ([]Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	staff := make([]Staff, len(m.staff))
	for i, s := range m.staff {
		staff[i] = copyStaff(s)
	}
	return staff, nil
}

// ReplaceStaff swaps the whole staff roster
func (m *MemoryStore) ReplaceStaff(ctx context.Context, staff []Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.staff = make([]Staff, len(staff))
	for i, s := range staff {
		m.staff[i] = copyStaff(s)
	}
	return nil
}

// ListEvents returns all calendar events
func (m *MemoryStore) ListEvents(ctx context.Context) ([]CalendarEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events), nil
}

// InsertEvent stores a calendar event
func (m *MemoryStore) InsertEvent(ctx context.Context, event *CalendarEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.events {
		if e.ID == event.ID {
			return fmt.Errorf("failed to insert event: duplicate ID %s", event.ID)
		}
	}
	m.events = append(m.events, *event)
	return nil
}

// ListCycles returns all scheduling cycles
func (m *MemoryStore) ListCycles(ctx context.Context) ([]Cycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.cycles), nil
}

// InsertCycle stores a scheduling cycle
func (m *MemoryStore) InsertCycle(ctx context.Context, cycle *Cycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.cycles {
		if c.ID == cycle.ID {
			return fmt.Errorf("failed to insert cycle: duplicate ID %s", cycle.ID)
		}
	}
	m.cycles = append(m.cycles, *cycle)
	return nil
}

// SetCycleConfirmed updates the confirmed flag of a cycle
func (m *MemoryStore) SetCycleConfirmed(ctx context.Context, id string, confirmed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cycles {
		if m.cycles[i].ID == id {
			m.cycles[i].Confirmed = confirmed
			return nil
		}
	}
	return fmt.Errorf("cycle %s: %w", id, ErrNotFound)
}

// ListStations returns the configured station names
func (m *MemoryStore) ListStations(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.stations), nil
}

// ReplaceStations swaps the station list
func (m *MemoryStore) ReplaceStations(ctx context.Context, stations []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations = slices.Clone(stations)
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

func copyShift(s Shift) Shift {
	s.Roles = slices.Clone(s.Roles)
	return s
}

func copyStaff(s Staff) Staff {
	s.Certified = slices.Clone(s.Certified)
	s.Learning = slices.Clone(s.Learning)
	s.Excluded = slices.Clone(s.Excluded)
	return s
}
