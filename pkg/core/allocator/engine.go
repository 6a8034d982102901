package allocator

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Options configures an Engine
type Options struct {
	// Random breaks ties between equally loaded candidates. Nil uses NewRandom().
	Random RandomSource

	// Criteria to apply to every candidate, in order. At least one is required.
	Criteria []Criterion
}

// Engine plans station and role assignments over an immutable snapshot.
// Passes return an outcome describing the records to write; the engine never writes anything itself.
type Engine struct {
	snapshot Snapshot
	criteria []Criterion
	random   RandomSource
	gate     *CycleLockGate
}

func NewEngine(snapshot Snapshot, opts Options) (*Engine, error) {
	if len(opts.Criteria) == 0 {
		return nil, errors.New("at least one criterion is required")
	}

	random := opts.Random
	if random == nil {
		random = NewRandom()
	}

	return &Engine{
		snapshot: snapshot,
		criteria: opts.Criteria,
		random:   random,
		gate:     NewCycleLockGate(snapshot.Cycles),
	}, nil
}

// Gate returns the lock gate built from the snapshot's cycles
func (e *Engine) Gate() *CycleLockGate {
	return e.gate
}

// checkRange rejects an invalid or locked range before any work is done
func (e *Engine) checkRange(r model.DateRange) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return e.gate.CheckRange(r)
}

// AssignStations fills every open general station on every open date of r.
//
// A station already held by anyone on a date is left alone. The winner for each open
// station is picked by the load balancer from the staff every criterion accepts.
func (e *Engine) AssignStations(r model.DateRange) (*AssignmentOutcome, error) {
	if err := e.checkRange(r); err != nil {
		return nil, err
	}

	state := newRunState(e.snapshot, e.random)
	stations := generalStations(e.snapshot.Stations)

	for _, date := range r.Days() {
		if state.availability.IsClosed(date) {
			continue
		}
		for _, station := range stations {
			if _, held := state.HolderOf(date, station); held {
				continue
			}
			slot := Slot{Date: date, Name: station, Kind: SlotStation}
			if err := e.fill(state, slot); err != nil {
				return nil, err
			}
		}
	}

	return e.buildOutcome(state), nil
}

// AssignRoles fills every open vacancy for the selected roles on every open date of r.
// Each role has at most one holder per day.
func (e *Engine) AssignRoles(r model.DateRange, roles []model.Role) (*AssignmentOutcome, error) {
	if err := e.checkRange(r); err != nil {
		return nil, err
	}
	for _, role := range roles {
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}
	}

	state := newRunState(e.snapshot, e.random)
	selected := model.NewRoleSet(roles...)

	for _, date := range r.Days() {
		if state.availability.IsClosed(date) {
			continue
		}
		for _, role := range selected {
			if _, held := state.HolderOf(date, string(role)); held {
				continue
			}
			slot := Slot{Date: date, Name: string(role), Kind: SlotRole}
			if err := e.fill(state, slot); err != nil {
				return nil, err
			}
		}
	}

	return e.buildOutcome(state), nil
}

// fill picks a candidate for slot and applies the assignment to the run state.
// A slot without candidates is recorded as unmet.
func (e *Engine) fill(state *RunState, slot Slot) error {
	candidates, vetoes := filterCandidates(state, e.criteria, slot)

	staffID, err := state.balancer.PickCandidate(slot.Name, candidates)
	if errors.Is(err, ErrNoEligibleCandidate) {
		state.unmet = append(state.unmet, UnmetSlot{Slot: slot, Vetoes: vetoes})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to pick candidate for %s: %w", slot, err)
	}

	state.assign(slot, staffID)
	return nil
}

func (e *Engine) buildOutcome(state *RunState) *AssignmentOutcome {
	outcome := &AssignmentOutcome{
		Assignments: state.assignments,
		Planned:     state.Planned(),
		Unmet:       state.unmet,
	}
	outcome.ValidationErrors = ValidateOutcome(state, e.criteria)
	return outcome
}

// RunState is the working copy of the roster during a pass
type RunState struct {
	staff        []model.StaffMember
	original     *shiftTable
	current      *shiftTable
	capabilities *CapabilityIndex
	availability *AvailabilityPredicate
	balancer     *LoadBalancer

	touched     map[model.ShiftKey]bool
	assignments []Assignment
	unmet       []UnmetSlot
}

func newRunState(snapshot Snapshot, random RandomSource) *RunState {
	original := newShiftTable(snapshot.Shifts)
	current := newShiftTable(snapshot.Shifts)

	return &RunState{
		staff:        snapshot.Staff,
		original:     original,
		current:      current,
		capabilities: NewCapabilityIndex(snapshot.Staff),
		availability: newAvailabilityPredicate(snapshot.Staff, snapshot.Events, current, snapshot.RestDays),
		balancer:     NewLoadBalancer(snapshot.Shifts, random),
		touched:      make(map[model.ShiftKey]bool),
	}
}

// Staff returns the roster in snapshot order
func (s *RunState) Staff() []model.StaffMember {
	return s.staff
}

func (s *RunState) Capabilities() *CapabilityIndex {
	return s.capabilities
}

func (s *RunState) Availability() *AvailabilityPredicate {
	return s.availability
}

// Record returns the current record for a staff member on a date, including assignments made so far
func (s *RunState) Record(staffID string, date time.Time) (model.ShiftRecord, bool) {
	return s.current.get(staffID, date)
}

// Original returns the record as it was in the snapshot
func (s *RunState) Original(staffID string, date time.Time) (model.ShiftRecord, bool) {
	return s.original.get(staffID, date)
}

// HolderOf returns who currently holds slotName on date
func (s *RunState) HolderOf(date time.Time, slotName string) (string, bool) {
	return s.current.holderOf(date, slotName)
}

// Assignments returns the assignments made so far, in order
func (s *RunState) Assignments() []Assignment {
	return s.assignments
}

// Planned returns the current record for every key touched by the run, ordered by date then staff
func (s *RunState) Planned() []model.ShiftRecord {
	planned := make([]model.ShiftRecord, 0, len(s.touched))
	for key := range s.touched {
		record, _ := s.current.get(key.StaffID, model.MustParseDate(key.Date))
		planned = append(planned, record)
	}
	sort.Slice(planned, func(i, j int) bool {
		if !planned[i].Date.Equal(planned[j].Date) {
			return planned[i].Date.Before(planned[j].Date)
		}
		return planned[i].StaffID < planned[j].StaffID
	})
	return planned
}

// assign writes a Generated facet for slot onto the staff member's record
func (s *RunState) assign(slot Slot, staffID string) {
	before := s.current.getOrNew(staffID, slot.Date)
	after := before

	switch slot.Kind {
	case SlotStation:
		after.Station = model.Generated(slot.Name)
	case SlotRole:
		after.Roles = model.Generated(Reconcile(before.HeldRoles(), model.Role(slot.Name)))
	}

	s.current.put(after)
	s.touched[after.Key()] = true
	s.balancer.Record(slot.Name, staffID)
	s.assignments = append(s.assignments, Assignment{
		Slot:    slot,
		StaffID: staffID,
		Before:  before,
		After:   after,
	})
}
