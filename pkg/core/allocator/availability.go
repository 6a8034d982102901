package allocator

import (
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// AvailabilityPredicate decides whether a staff member may receive any assignment on a date.
//
// A staff member is unavailable when:
//   - their group's rest-day pattern makes the date a rest day
//   - the department is closed on the date
//   - their record for the date marks them off
//
// Holding a station does not make someone unavailable; they can still take a compatible role.
type AvailabilityPredicate struct {
	staff    map[string]model.StaffMember
	closed   map[string]bool
	shifts   *shiftTable
	restDays RestDayCalendar
}

func newAvailabilityPredicate(staff []model.StaffMember, events []model.CalendarEvent, shifts *shiftTable, restDays RestDayCalendar) *AvailabilityPredicate {
	byID := make(map[string]model.StaffMember, len(staff))
	for _, member := range staff {
		byID[member.ID] = member
	}

	closed := make(map[string]bool)
	for _, event := range events {
		if event.Type == model.EventDepartmentClosed {
			closed[model.FormatDate(event.Date)] = true
		}
	}

	return &AvailabilityPredicate{
		staff:    byID,
		closed:   closed,
		shifts:   shifts,
		restDays: restDays,
	}
}

// NewAvailabilityPredicate builds a predicate over a snapshot
func NewAvailabilityPredicate(snapshot Snapshot) *AvailabilityPredicate {
	return newAvailabilityPredicate(snapshot.Staff, snapshot.Events, newShiftTable(snapshot.Shifts), snapshot.RestDays)
}

// IsClosed returns true if a DEPARTMENT_CLOSED event falls on the date
func (p *AvailabilityPredicate) IsClosed(date time.Time) bool {
	return p.closed[model.FormatDate(date)]
}

// BaseStatus returns the rest-day status for a staff member, ignoring events and records
func (p *AvailabilityPredicate) BaseStatus(staffID string, date time.Time) model.BaseStatus {
	member, ok := p.staff[staffID]
	if !ok || p.restDays == nil {
		return model.BaseStatusWorking
	}
	return p.restDays.BaseStatus(date, member.GroupKey)
}

func (p *AvailabilityPredicate) IsAvailable(staffID string, date time.Time) bool {
	if _, ok := p.staff[staffID]; !ok {
		return false
	}
	if p.BaseStatus(staffID, date) == model.BaseStatusOff {
		return false
	}
	if p.IsClosed(date) {
		return false
	}
	if record, ok := p.shifts.get(staffID, date); ok && record.IsOff() {
		return false
	}
	return true
}
