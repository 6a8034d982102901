package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ClearGeneratedStore defines the database operations needed to clear generated assignments
type ClearGeneratedStore interface {
	ListCycles(ctx context.Context) ([]db.Cycle, error)
	ListShifts(ctx context.Context, from, to string) ([]db.Shift, error)
	UpsertShifts(ctx context.Context, shifts []db.Shift) error
}

// ClearGeneratedResult reports what a clear touched
type ClearGeneratedResult struct {
	Range           model.DateRange
	StationsCleared int
	RolesCleared    int
	Records         []model.ShiftRecord
}

// ClearGenerated resets every generated station and role facet in the range to absent
// so a later run can recompute them. Manual facets are kept. Confirmed cycles block the clear.
func ClearGenerated(ctx context.Context, store ClearGeneratedStore, logger *zap.Logger, start, end time.Time) (*ClearGeneratedResult, error) {
	r := model.NewDateRange(start, end)
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %s", allocator.ErrInvalidRange, r)
	}

	cycles, err := loadCycles(ctx, store)
	if err != nil {
		return nil, err
	}
	if err := allocator.NewCycleLockGate(cycles).CheckRange(r); err != nil {
		return nil, err
	}

	rows, err := store.ListShifts(ctx, model.FormatDate(r.Start), model.FormatDate(r.End))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	records, err := shiftsFromDB(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}

	result := &ClearGeneratedResult{Range: r}
	for _, record := range records {
		changed := false
		if record.Station.IsGenerated() {
			record.Station = model.Facet[string]{}
			result.StationsCleared++
			changed = true
		}
		if record.Roles.IsGenerated() {
			record.Roles = model.Facet[model.RoleSet]{}
			result.RolesCleared++
			changed = true
		}
		if changed {
			result.Records = append(result.Records, record)
		}
	}

	if len(result.Records) == 0 {
		logger.Info("No generated assignments to clear", zap.String("range", r.String()))
		return result, nil
	}

	if err := store.UpsertShifts(ctx, shiftsToDB(result.Records)); err != nil {
		return nil, fmt.Errorf("failed to save cleared shifts: %w", err)
	}

	logger.Info("Cleared generated assignments",
		zap.String("range", r.String()),
		zap.Int("stations", result.StationsCleared),
		zap.Int("roles", result.RolesCleared))

	return result, nil
}
