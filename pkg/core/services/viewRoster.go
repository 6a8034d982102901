package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ViewRosterStore defines the database operations needed to view the roster
type ViewRosterStore interface {
	ListStaff(ctx context.Context) ([]db.Staff, error)
	ListEvents(ctx context.Context) ([]db.CalendarEvent, error)
	ListCycles(ctx context.Context) ([]db.Cycle, error)
	ListShifts(ctx context.Context, from, to string) ([]db.Shift, error)
}

// RosterCell is one staff member's day in the roster grid
type RosterCell struct {
	Record  model.ShiftRecord
	RestDay bool // Base status from the rest-day calendar is off
}

// RosterRow is one staff member's line of the roster grid
type RosterRow struct {
	Staff model.StaffMember
	Cells []RosterCell // One per date
}

// RosterView is the (staff x date) roster grid
type RosterView struct {
	Range  model.DateRange
	Dates  []time.Time
	Closed map[string]bool // Keyed by formatted date
	Locked map[string]bool // Keyed by formatted date
	Events []model.CalendarEvent
	Rows   []RosterRow
}

// IsClosed reports whether the department is closed on date
func (v *RosterView) IsClosed(date time.Time) bool {
	return v.Closed[model.FormatDate(date)]
}

// IsLocked reports whether a confirmed cycle covers date
func (v *RosterView) IsLocked(date time.Time) bool {
	return v.Locked[model.FormatDate(date)]
}

// CellText is the display text for a cell: CLOSED on closed dates, the record's
// contents otherwise, or OFF on an empty rest day
func (v *RosterView) CellText(date time.Time, cell RosterCell) string {
	if v.IsClosed(date) {
		return "CLOSED"
	}
	text := sheetsclient.FormatCell(cell.Record)
	if text == "" && cell.RestDay {
		return model.StationOff
	}
	return text
}

// ViewRoster builds the roster grid between start and end
func ViewRoster(ctx context.Context, store ViewRosterStore, restDays allocator.RestDayCalendar, logger *zap.Logger, start, end time.Time) (*RosterView, error) {
	r := model.NewDateRange(start, end)
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %s", allocator.ErrInvalidRange, r)
	}

	staffRows, err := store.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	staff := make([]model.StaffMember, len(staffRows))
	for i, row := range staffRows {
		staff[i] = staffFromDB(row)
	}

	events, err := loadEvents(ctx, store)
	if err != nil {
		return nil, err
	}
	cycles, err := loadCycles(ctx, store)
	if err != nil {
		return nil, err
	}

	shiftRows, err := store.ListShifts(ctx, model.FormatDate(r.Start), model.FormatDate(r.End))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	shifts, err := shiftsFromDB(shiftRows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	logger.Debug("Loaded roster", zap.Int("staff", len(staff)), zap.Int("shifts", len(shifts)))

	byKey := make(map[model.ShiftKey]model.ShiftRecord, len(shifts))
	for _, record := range shifts {
		byKey[record.Key()] = record
	}

	availability := allocator.NewAvailabilityPredicate(allocator.Snapshot{Staff: staff, Events: events, RestDays: restDays})
	gate := allocator.NewCycleLockGate(cycles)

	view := &RosterView{
		Range:  r,
		Dates:  r.Days(),
		Closed: make(map[string]bool),
		Locked: make(map[string]bool),
	}
	for _, date := range view.Dates {
		day := model.FormatDate(date)
		view.Closed[day] = availability.IsClosed(date)
		view.Locked[day] = gate.IsLocked(date)
	}
	for _, event := range events {
		if r.Contains(event.Date) {
			view.Events = append(view.Events, event)
		}
	}

	for _, member := range staff {
		row := RosterRow{Staff: member, Cells: make([]RosterCell, len(view.Dates))}
		for i, date := range view.Dates {
			key := model.ShiftKey{StaffID: member.ID, Date: model.FormatDate(date)}
			record, ok := byKey[key]
			if !ok {
				record = model.ShiftRecord{StaffID: member.ID, Date: date}
			}
			row.Cells[i] = RosterCell{
				Record:  record,
				RestDay: availability.BaseStatus(member.ID, date) == model.BaseStatusOff,
			}
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}
