package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

var (
	// ErrDepartmentClosed is returned for edits on a DEPARTMENT_CLOSED date
	ErrDepartmentClosed = errors.New("department is closed on this date")

	// ErrUnknownStaff is returned when an edit names a staff ID not on the roster
	ErrUnknownStaff = errors.New("unknown staff member")

	// ErrUnknownStation is returned when an edit names a station that is not configured
	ErrUnknownStation = errors.New("unknown station")
)

// EditShiftStore defines the database operations needed for manual roster edits
type EditShiftStore interface {
	ListStaff(ctx context.Context) ([]db.Staff, error)
	ListStations(ctx context.Context) ([]string, error)
	ListEvents(ctx context.Context) ([]db.CalendarEvent, error)
	ListShifts(ctx context.Context, from, to string) ([]db.Shift, error)
	UpsertShifts(ctx context.Context, shifts []db.Shift) error
}

// SetStation writes a manual station for a staff member on a date.
// station may be a configured station, OFF, or empty to lock the cell blank.
// Confirmed cycles do not block manual edits; closed dates do.
func SetStation(ctx context.Context, store EditShiftStore, logger *zap.Logger, staffID string, date time.Time, station string) (*model.ShiftRecord, error) {
	date = model.Day(date)
	logger.Debug("Setting station",
		zap.String("staff_id", staffID),
		zap.String("date", model.FormatDate(date)),
		zap.String("station", station))

	if model.IsGeneralStation(station) {
		stations, err := store.ListStations(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stations: %w", err)
		}
		if !slices.Contains(stations, station) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStation, station)
		}
	}

	record, err := loadEditableRecord(ctx, store, staffID, date)
	if err != nil {
		return nil, err
	}

	record.Station = model.Manual(station)

	if err := store.UpsertShifts(ctx, []db.Shift{shiftToDB(record)}); err != nil {
		return nil, fmt.Errorf("failed to save shift: %w", err)
	}

	logger.Info("Station set",
		zap.String("staff_id", staffID),
		zap.String("date", model.FormatDate(date)),
		zap.String("station", station))

	return &record, nil
}

// ToggleRole removes role if the staff member holds it on date, otherwise selects it
// through the conflict policy. The resulting role set is manual.
func ToggleRole(ctx context.Context, store EditShiftStore, logger *zap.Logger, staffID string, date time.Time, role model.Role) (*model.ShiftRecord, error) {
	date = model.Day(date)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", allocator.ErrUnknownRole, role)
	}

	record, err := loadEditableRecord(ctx, store, staffID, date)
	if err != nil {
		return nil, err
	}

	before := record.HeldRoles()
	record.Roles = model.Manual(allocator.ToggleRole(before, role))

	if err := store.UpsertShifts(ctx, []db.Shift{shiftToDB(record)}); err != nil {
		return nil, fmt.Errorf("failed to save shift: %w", err)
	}

	logger.Info("Role toggled",
		zap.String("staff_id", staffID),
		zap.String("date", model.FormatDate(date)),
		zap.String("before", before.String()),
		zap.String("after", record.HeldRoles().String()))

	return &record, nil
}

// loadEditableRecord checks the staff member and date can be edited and returns
// their current record, or a fresh one
func loadEditableRecord(ctx context.Context, store EditShiftStore, staffID string, date time.Time) (model.ShiftRecord, error) {
	staff, err := store.ListStaff(ctx)
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("failed to fetch staff: %w", err)
	}
	if !slices.ContainsFunc(staff, func(s db.Staff) bool { return s.ID == staffID }) {
		return model.ShiftRecord{}, fmt.Errorf("%w: %s", ErrUnknownStaff, staffID)
	}

	events, err := loadEvents(ctx, store)
	if err != nil {
		return model.ShiftRecord{}, err
	}
	if allocator.NewAvailabilityPredicate(allocator.Snapshot{Events: events}).IsClosed(date) {
		return model.ShiftRecord{}, fmt.Errorf("%w: %s", ErrDepartmentClosed, model.FormatDate(date))
	}

	day := model.FormatDate(date)
	rows, err := store.ListShifts(ctx, day, day)
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	for _, row := range rows {
		if row.StaffID == staffID {
			record, err := shiftFromDB(row)
			if err != nil {
				return model.ShiftRecord{}, fmt.Errorf("failed to decode shift: %w", err)
			}
			return record, nil
		}
	}

	return model.ShiftRecord{StaffID: staffID, Date: date}, nil
}
