package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// RosterReader defines the read operations needed to snapshot the roster
type RosterReader interface {
	ListStaff(ctx context.Context) ([]db.Staff, error)
	ListStations(ctx context.Context) ([]string, error)
	ListEvents(ctx context.Context) ([]db.CalendarEvent, error)
	ListCycles(ctx context.Context) ([]db.Cycle, error)
	ListShifts(ctx context.Context, from, to string) ([]db.Shift, error)
}

// loadSnapshot reads everything an engine run needs. Shifts are read without
// bounds so load balancing sees all history.
func loadSnapshot(ctx context.Context, store RosterReader, restDays allocator.RestDayCalendar, logger *zap.Logger) (allocator.Snapshot, error) {
	logger.Debug("Fetching staff")
	staffRows, err := store.ListStaff(ctx)
	if err != nil {
		return allocator.Snapshot{}, fmt.Errorf("failed to fetch staff: %w", err)
	}
	staff := make([]model.StaffMember, len(staffRows))
	for i, row := range staffRows {
		staff[i] = staffFromDB(row)
	}

	logger.Debug("Fetching stations")
	stations, err := store.ListStations(ctx)
	if err != nil {
		return allocator.Snapshot{}, fmt.Errorf("failed to fetch stations: %w", err)
	}

	events, err := loadEvents(ctx, store)
	if err != nil {
		return allocator.Snapshot{}, err
	}

	cycles, err := loadCycles(ctx, store)
	if err != nil {
		return allocator.Snapshot{}, err
	}

	logger.Debug("Fetching shift history")
	shiftRows, err := store.ListShifts(ctx, "", "")
	if err != nil {
		return allocator.Snapshot{}, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	shifts, err := shiftsFromDB(shiftRows)
	if err != nil {
		return allocator.Snapshot{}, fmt.Errorf("failed to decode shifts: %w", err)
	}

	logger.Debug("Loaded snapshot",
		zap.Int("staff", len(staff)),
		zap.Int("stations", len(stations)),
		zap.Int("events", len(events)),
		zap.Int("cycles", len(cycles)),
		zap.Int("shifts", len(shifts)))

	return allocator.Snapshot{
		Staff:    staff,
		Stations: stations,
		Events:   events,
		Cycles:   cycles,
		Shifts:   shifts,
		RestDays: restDays,
	}, nil
}

type eventLister interface {
	ListEvents(ctx context.Context) ([]db.CalendarEvent, error)
}

type cycleLister interface {
	ListCycles(ctx context.Context) ([]db.Cycle, error)
}

func loadEvents(ctx context.Context, store eventLister) ([]model.CalendarEvent, error) {
	rows, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	events := make([]model.CalendarEvent, 0, len(rows))
	for _, row := range rows {
		event, err := eventFromDB(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func loadCycles(ctx context.Context, store cycleLister) ([]model.SchedulingCycle, error) {
	rows, err := store.ListCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycles: %w", err)
	}
	cycles := make([]model.SchedulingCycle, 0, len(rows))
	for _, row := range rows {
		cycle, err := cycleFromDB(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cycle: %w", err)
		}
		cycles = append(cycles, cycle)
	}
	return cycles, nil
}
