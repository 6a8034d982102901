package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ErrCycleOverlap is returned when a new cycle would overlap an existing one
var ErrCycleOverlap = errors.New("scheduling cycle overlaps an existing cycle")

// CalendarStore defines the database operations needed for calendar events
type CalendarStore interface {
	InsertEvent(ctx context.Context, event *db.CalendarEvent) error
}

// CycleStore defines the database operations needed for scheduling cycles
type CycleStore interface {
	ListCycles(ctx context.Context) ([]db.Cycle, error)
	InsertCycle(ctx context.Context, cycle *db.Cycle) error
	SetCycleConfirmed(ctx context.Context, id string, confirmed bool) error
}

// AddCalendarEvent records a dated department event
func AddCalendarEvent(ctx context.Context, store CalendarStore, logger *zap.Logger, date time.Time, eventType model.EventType, note string) (*model.CalendarEvent, error) {
	if !eventType.IsValid() {
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}

	event := model.CalendarEvent{
		ID:   uuid.New().String(),
		Date: model.Day(date),
		Type: eventType,
		Note: note,
	}

	err := store.InsertEvent(ctx, &db.CalendarEvent{
		ID:        event.ID,
		EventDate: model.FormatDate(event.Date),
		EventType: string(event.Type),
		Note:      event.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar event: %w", err)
	}

	logger.Info("Calendar event added",
		zap.String("id", event.ID),
		zap.String("date", model.FormatDate(event.Date)),
		zap.String("type", string(event.Type)))

	if event.Type == model.EventDepartmentClosed {
		logger.Warn("Department closed: assignments on this date are ignored by runs and rejected for edits",
			zap.String("date", model.FormatDate(event.Date)))
	}

	return &event, nil
}

// DefineCycle creates an unconfirmed scheduling cycle. Cycles may not overlap.
func DefineCycle(ctx context.Context, store CycleStore, logger *zap.Logger, start, end time.Time) (*model.SchedulingCycle, error) {
	r := model.NewDateRange(start, end)
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %s", allocator.ErrInvalidRange, r)
	}

	cycles, err := loadCycles(ctx, store)
	if err != nil {
		return nil, err
	}
	for _, existing := range cycles {
		if existing.Range().Overlaps(r) {
			return nil, fmt.Errorf("%w: cycle %s (%s)", ErrCycleOverlap, existing.ID, existing.Range())
		}
	}

	cycle := model.SchedulingCycle{ID: uuid.New().String(), Start: r.Start, End: r.End}
	err = store.InsertCycle(ctx, &db.Cycle{
		ID:        cycle.ID,
		StartDate: model.FormatDate(cycle.Start),
		EndDate:   model.FormatDate(cycle.End),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert cycle: %w", err)
	}

	logger.Info("Cycle defined", zap.String("id", cycle.ID), zap.String("range", r.String()))

	return &cycle, nil
}

// ConfirmCycle locks a cycle against assignment runs
func ConfirmCycle(ctx context.Context, store CycleStore, logger *zap.Logger, id string) error {
	if err := store.SetCycleConfirmed(ctx, id, true); err != nil {
		return fmt.Errorf("failed to confirm cycle: %w", err)
	}
	logger.Info("Cycle confirmed", zap.String("id", id))
	return nil
}

// UnlockCycle reopens a confirmed cycle to assignment runs
func UnlockCycle(ctx context.Context, store CycleStore, logger *zap.Logger, id string) error {
	if err := store.SetCycleConfirmed(ctx, id, false); err != nil {
		return fmt.Errorf("failed to unlock cycle: %w", err)
	}
	logger.Info("Cycle unlocked", zap.String("id", id))
	return nil
}

// ListCycles returns every scheduling cycle, earliest first
func ListCycles(ctx context.Context, store CycleStore, logger *zap.Logger) ([]model.SchedulingCycle, error) {
	cycles, err := loadCycles(ctx, store)
	if err != nil {
		return nil, err
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Start.Before(cycles[j].Start)
	})
	logger.Debug("Cycles loaded", zap.Int("count", len(cycles)))
	return cycles, nil
}
