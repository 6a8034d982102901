package allocator

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// RestDayCalendar answers the default working status of a staff group on a date
type RestDayCalendar interface {
	BaseStatus(date time.Time, groupKey string) model.BaseStatus
}

// Snapshot is everything the engine reads. It is taken once per run and not modified.
type Snapshot struct {
	// Staff roster
	Staff []model.StaffMember

	// Stations is the list of station names. Markers (OFF, unassigned) are ignored.
	Stations []string

	// Events is the department calendar
	Events []model.CalendarEvent

	// Cycles are the scheduling cycles used by the lock gate
	Cycles []model.SchedulingCycle

	// Shifts holds every known record, not only those in the run's range.
	// Load balancing counts over all of them.
	Shifts []model.ShiftRecord

	// RestDays derives base status from each staff group. Nil means everyone works every day.
	RestDays RestDayCalendar
}

// SlotKind distinguishes station vacancies from special-role vacancies
type SlotKind int

const (
	SlotStation SlotKind = iota
	SlotRole
)

func (k SlotKind) String() string {
	if k == SlotRole {
		return "role"
	}
	return "station"
}

// Slot is a single vacancy on a date: one station or one role
type Slot struct {
	Date time.Time
	Name string
	Kind SlotKind
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s", model.FormatDate(s.Date), s.Kind, s.Name)
}

// Assignment records one slot filled by the engine
type Assignment struct {
	Slot    Slot
	StaffID string

	// Before is the record as it was before this assignment (zero facets if it did not exist)
	Before model.ShiftRecord

	// After is the record once the assignment is applied
	After model.ShiftRecord
}

// UnmetSlot is a vacancy the engine could not fill
type UnmetSlot struct {
	Slot Slot

	// Vetoes counts, per criterion name, how many staff were rejected by that criterion.
	// Each staff member is counted against the first criterion that rejected them.
	Vetoes map[string]int
}

// Reason summarises why the slot is unmet
func (u UnmetSlot) Reason() string {
	if len(u.Vetoes) == 0 {
		return "no staff on roster"
	}
	names := make([]string, 0, len(u.Vetoes))
	for name := range u.Vetoes {
		names = append(names, name)
	}
	sort.Strings(names)

	reason := "no eligible candidate ("
	for i, name := range names {
		if i > 0 {
			reason += ", "
		}
		reason += fmt.Sprintf("%s: %d", name, u.Vetoes[name])
	}
	return reason + ")"
}

// AssignmentValidationError represents a broken invariant found after a pass
type AssignmentValidationError struct {
	Date          string
	StaffID       string
	Slot          string
	CriterionName string
	Description   string
}

// AssignmentOutcome is the result of a pass. Nothing has been written yet.
type AssignmentOutcome struct {
	// Assignments in the order they were made
	Assignments []Assignment

	// Planned holds the final record for every touched (staff, date), ordered by date then staff.
	// Committing these records applies the pass.
	Planned []model.ShiftRecord

	// Unmet lists vacancies left open
	Unmet []UnmetSlot

	// ValidationErrors is empty unless an invariant was broken
	ValidationErrors []AssignmentValidationError
}

// shiftTable indexes records by date then staff
type shiftTable struct {
	byDate map[string]map[string]model.ShiftRecord
}

func newShiftTable(records []model.ShiftRecord) *shiftTable {
	t := &shiftTable{byDate: make(map[string]map[string]model.ShiftRecord)}
	for _, record := range records {
		t.put(record)
	}
	return t
}

func (t *shiftTable) get(staffID string, date time.Time) (model.ShiftRecord, bool) {
	record, ok := t.byDate[model.FormatDate(date)][staffID]
	return record, ok
}

// getOrNew returns the record for the key, or an empty record with the key set
func (t *shiftTable) getOrNew(staffID string, date time.Time) model.ShiftRecord {
	if record, ok := t.get(staffID, date); ok {
		return record
	}
	return model.ShiftRecord{StaffID: staffID, Date: model.Day(date)}
}

func (t *shiftTable) put(record model.ShiftRecord) {
	key := model.FormatDate(record.Date)
	day, ok := t.byDate[key]
	if !ok {
		day = make(map[string]model.ShiftRecord)
		t.byDate[key] = day
	}
	day[record.StaffID] = record
}

// onDate returns the records for a date ordered by staff ID
func (t *shiftTable) onDate(date time.Time) []model.ShiftRecord {
	day := t.byDate[model.FormatDate(date)]
	records := make([]model.ShiftRecord, 0, len(day))
	for _, record := range day {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StaffID < records[j].StaffID
	})
	return records
}

// holderOf returns the staff ID holding slotName on date, if any
func (t *shiftTable) holderOf(date time.Time, slotName string) (string, bool) {
	for _, record := range t.onDate(date) {
		if record.Holds(slotName) {
			return record.StaffID, true
		}
	}
	return "", false
}

// generalStations filters markers and duplicates out of a station list, keeping its order
func generalStations(stations []string) []string {
	seen := make(map[string]bool, len(stations))
	result := make([]string, 0, len(stations))
	for _, station := range stations {
		if !model.IsGeneralStation(station) || seen[station] {
			continue
		}
		seen[station] = true
		result = append(result, station)
	}
	return result
}
