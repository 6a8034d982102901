package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/allocator/criteria"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// AutoAssignStore defines the database operations needed for an assignment run
type AutoAssignStore interface {
	RosterReader
	UpsertShifts(ctx context.Context, shifts []db.Shift) error
}

// AutoAssignOptions controls an assignment run
type AutoAssignOptions struct {
	// DryRun plans the run without writing anything
	DryRun bool

	// ForceCommit writes the plan even when post-run validation reports errors
	ForceCommit bool

	// Seed makes tie-breaks reproducible. Nil draws fresh entropy.
	Seed *uint64

	// Guard rejects overlapping concurrent runs. Nil uses the process-wide guard.
	Guard *RunGuard
}

// AutoAssignResult contains the outcome of an assignment run
type AutoAssignResult struct {
	RunID            string
	Range            model.DateRange
	Planned          []model.ShiftRecord
	Assignments      []allocator.Assignment
	Unmet            []allocator.UnmetSlot
	ValidationErrors []allocator.AssignmentValidationError
	Committed        bool
}

// AutoAssignStations fills open station cells between start and end
func AutoAssignStations(
	ctx context.Context,
	store AutoAssignStore,
	restDays allocator.RestDayCalendar,
	logger *zap.Logger,
	opts AutoAssignOptions,
	start, end time.Time,
) (*AutoAssignResult, error) {
	return runAutoAssign(ctx, store, restDays, logger.With(zap.String("pass", "stations")), opts, start, end,
		func(engine *allocator.Engine, r model.DateRange) (*allocator.AssignmentOutcome, error) {
			return engine.AssignStations(r)
		})
}

// AutoAssignRoles fills open vacancies for the selected roles between start and end
func AutoAssignRoles(
	ctx context.Context,
	store AutoAssignStore,
	restDays allocator.RestDayCalendar,
	logger *zap.Logger,
	opts AutoAssignOptions,
	start, end time.Time,
	roles []model.Role,
) (*AutoAssignResult, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("at least one role must be selected")
	}
	return runAutoAssign(ctx, store, restDays, logger.With(zap.String("pass", "roles")), opts, start, end,
		func(engine *allocator.Engine, r model.DateRange) (*allocator.AssignmentOutcome, error) {
			return engine.AssignRoles(r, roles)
		})
}

type assignmentPass func(engine *allocator.Engine, r model.DateRange) (*allocator.AssignmentOutcome, error)

// runAutoAssign snapshots the store, plans one pass and commits the plan in a single batch
func runAutoAssign(
	ctx context.Context,
	store AutoAssignStore,
	restDays allocator.RestDayCalendar,
	logger *zap.Logger,
	opts AutoAssignOptions,
	start, end time.Time,
	pass assignmentPass,
) (*AutoAssignResult, error) {
	r := model.NewDateRange(start, end)
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	logger.Debug("Starting assignment run",
		zap.String("range", r.String()),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("force_commit", opts.ForceCommit))

	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %s", allocator.ErrInvalidRange, r)
	}

	guard := opts.Guard
	if guard == nil {
		guard = defaultRunGuard
	}
	release, err := guard.Acquire(runID, r)
	if err != nil {
		return nil, err
	}
	defer release()

	snapshot, err := loadSnapshot(ctx, store, restDays, logger)
	if err != nil {
		return nil, err
	}

	random := allocator.NewRandom()
	if opts.Seed != nil {
		random = allocator.NewSeededRandom(*opts.Seed)
		logger.Debug("Using seeded tie-breaks", zap.Uint64("seed", *opts.Seed))
	}

	engine, err := allocator.NewEngine(snapshot, allocator.Options{
		Random:   random,
		Criteria: criteria.Defaults(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	outcome, err := pass(engine, r)
	if err != nil {
		return nil, err
	}

	result := &AutoAssignResult{
		RunID:            runID,
		Range:            r,
		Planned:          outcome.Planned,
		Assignments:      outcome.Assignments,
		Unmet:            outcome.Unmet,
		ValidationErrors: outcome.ValidationErrors,
	}

	logger.Info("Planned assignments",
		zap.Int("assignments", len(outcome.Assignments)),
		zap.Int("records", len(outcome.Planned)),
		zap.Int("unmet", len(outcome.Unmet)),
		zap.Int("validation_errors", len(outcome.ValidationErrors)))

	for _, unmet := range outcome.Unmet {
		logger.Debug("Unmet slot", zap.String("slot", unmet.Slot.String()), zap.String("reason", unmet.Reason()))
	}

	if opts.DryRun {
		logger.Info("Dry run, not committing")
		return result, nil
	}

	if len(outcome.ValidationErrors) > 0 && !opts.ForceCommit {
		logger.Warn("Validation failed, not committing", zap.Int("errors", len(outcome.ValidationErrors)))
		return result, nil
	}

	if len(outcome.Planned) == 0 {
		logger.Info("Nothing to commit")
		return result, nil
	}

	if err := store.UpsertShifts(ctx, shiftsToDB(outcome.Planned)); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}
	result.Committed = true

	logger.Info("Committed assignments", zap.Int("records", len(outcome.Planned)))

	return result, nil
}
