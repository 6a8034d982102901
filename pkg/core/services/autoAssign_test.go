package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

var (
	monday  = model.MustParseDate("2024-06-10")
	tuesday = model.MustParseDate("2024-06-11")
)

func TestAutoAssignStations_CommitsPlan(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemoryStore: seedStore(t)}

	result, err := AutoAssignStations(ctx, store, nil, testLogger(), AutoAssignOptions{Seed: seed(1)}, monday, tuesday)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.Committed)
	assert.Empty(t, result.Unmet)
	assert.Empty(t, result.ValidationErrors)
	assert.Len(t, result.Planned, 6)
	assert.Equal(t, 1, store.upsertCalls, "a pass commits in one batch")

	for _, date := range []string{"2024-06-10", "2024-06-11"} {
		shifts := shiftsOn(t, store, date)
		assert.Equal(t, "CT", shifts["A"].Station)
		assert.Equal(t, "MRI", shifts["B"].Station)
		assert.Equal(t, "US", shifts["C"].Station)
		assert.True(t, shifts["A"].StationAutoGenerated)
	}
}

func TestAutoAssignStations_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemoryStore: seedStore(t)}

	result, err := AutoAssignStations(ctx, store, nil, testLogger(), AutoAssignOptions{DryRun: true}, monday, monday)
	require.NoError(t, err)

	assert.False(t, result.Committed)
	assert.Len(t, result.Planned, 3)
	assert.Zero(t, store.upsertCalls)
	assert.Empty(t, shiftsOn(t, store, "2024-06-10"))
}

func TestAutoAssignStations_KeepsManualCells(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.UpsertShifts(ctx, []db.Shift{
		{StaffID: "C", ShiftDate: "2024-06-10", Station: "OFF", RoleAutoGenerated: true},
	}))

	result, err := AutoAssignStations(ctx, store, nil, testLogger(), AutoAssignOptions{}, monday, monday)
	require.NoError(t, err)

	require.Len(t, result.Unmet, 1)
	assert.Equal(t, "US", result.Unmet[0].Slot.Name)

	shifts := shiftsOn(t, store, "2024-06-10")
	assert.Equal(t, "OFF", shifts["C"].Station)
	assert.False(t, shifts["C"].StationAutoGenerated)
}

func TestAutoAssignStations_LockedCycle(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemoryStore: seedStore(t)}
	require.NoError(t, store.InsertCycle(ctx, &db.Cycle{ID: "c1", StartDate: "2024-06-11", EndDate: "2024-06-20", Confirmed: true}))

	_, err := AutoAssignStations(ctx, store, nil, testLogger(), AutoAssignOptions{}, monday, tuesday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, allocator.ErrCycleLocked))
	assert.Contains(t, err.Error(), "c1")
	assert.Zero(t, store.upsertCalls)
}

func TestAutoAssignStations_InvalidRange(t *testing.T) {
	_, err := AutoAssignStations(context.Background(), seedStore(t), nil, testLogger(), AutoAssignOptions{}, tuesday, monday)
	assert.True(t, errors.Is(err, allocator.ErrInvalidRange))
}

func TestAutoAssignStations_SaveFailure(t *testing.T) {
	store := &failingUpsertStore{MemoryStore: seedStore(t)}

	_, err := AutoAssignStations(context.Background(), store, nil, testLogger(), AutoAssignOptions{}, monday, monday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStoreDown))
	assert.Equal(t, 1, store.upsertCalls)
}

func TestAutoAssign_RunGuardRejectsOverlap(t *testing.T) {
	guard := NewRunGuard()
	release, err := guard.Acquire("other", model.NewDateRange(tuesday, tuesday))
	require.NoError(t, err)

	_, err = AutoAssignStations(context.Background(), seedStore(t), nil, testLogger(), AutoAssignOptions{Guard: guard}, monday, tuesday)
	assert.True(t, errors.Is(err, ErrRunInProgress))

	// A disjoint range is fine while the other run is active
	_, err = AutoAssignStations(context.Background(), seedStore(t), nil, testLogger(), AutoAssignOptions{Guard: guard}, monday, monday)
	assert.NoError(t, err)

	release()
	_, err = AutoAssignStations(context.Background(), seedStore(t), nil, testLogger(), AutoAssignOptions{Guard: guard}, monday, tuesday)
	assert.NoError(t, err)
}

func TestAutoAssignRoles_StacksOnStations(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	_, err := AutoAssignStations(ctx, store, nil, testLogger(), AutoAssignOptions{}, monday, monday)
	require.NoError(t, err)

	result, err := AutoAssignRoles(ctx, store, nil, testLogger(), AutoAssignOptions{Seed: seed(3)}, monday, monday,
		[]model.Role{model.RoleLate, model.RoleAssist})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Empty(t, result.Unmet)

	shifts := shiftsOn(t, store, "2024-06-10")
	assert.Equal(t, "CT", shifts["A"].Station, "stations survive the role pass")
	assert.Equal(t, []string{"ASSIST"}, shifts["A"].Roles)
	assert.Equal(t, []string{"LATE"}, shifts["B"].Roles)
	assert.True(t, shifts["B"].RoleAutoGenerated)
}

func TestAutoAssignRoles_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := AutoAssignRoles(ctx, seedStore(t), nil, testLogger(), AutoAssignOptions{}, monday, monday, nil)
	assert.Error(t, err)

	_, err = AutoAssignRoles(ctx, seedStore(t), nil, testLogger(), AutoAssignOptions{}, monday, monday, []model.Role{"JANITOR"})
	assert.True(t, errors.Is(err, allocator.ErrUnknownRole))
}

func TestAutoAssignStations_SkipsClosedDates(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.InsertEvent(ctx, &db.CalendarEvent{ID: "e1", EventDate: "2024-06-10", EventType: "DEPARTMENT_CLOSED"}))

	result, err := AutoAssignStations(ctx, store, nil, testLogger(), AutoAssignOptions{}, monday, tuesday)
	require.NoError(t, err)

	assert.Empty(t, shiftsOn(t, store, "2024-06-10"))
	assert.Len(t, shiftsOn(t, store, "2024-06-11"), 3)
	assert.Empty(t, result.Unmet)
}
