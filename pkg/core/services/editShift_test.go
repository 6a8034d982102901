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

func TestSetStation_WritesManualFacet(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.UpsertShifts(ctx, []db.Shift{
		{StaffID: "A", ShiftDate: "2024-06-10", Station: "CT", StationAutoGenerated: true, Roles: []string{"OPENING"}, RoleAutoGenerated: true},
	}))

	record, err := SetStation(ctx, store, testLogger(), "A", monday, "MRI")
	require.NoError(t, err)
	assert.Equal(t, model.Manual("MRI"), record.Station)

	shift := shiftsOn(t, store, "2024-06-10")["A"]
	assert.Equal(t, "MRI", shift.Station)
	assert.False(t, shift.StationAutoGenerated)
	assert.Equal(t, []string{"OPENING"}, shift.Roles, "roles are untouched")
	assert.True(t, shift.RoleAutoGenerated)
}

func TestSetStation_MarkersAndBlank(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	_, err := SetStation(ctx, store, testLogger(), "B", monday, model.StationOff)
	require.NoError(t, err)
	_, err = SetStation(ctx, store, testLogger(), "C", monday, model.StationUnassigned)
	require.NoError(t, err)

	shifts := shiftsOn(t, store, "2024-06-10")
	assert.Equal(t, "OFF", shifts["B"].Station)
	assert.False(t, shifts["B"].StationAutoGenerated)
	assert.Empty(t, shifts["B"].Roles)
	assert.True(t, shifts["B"].RoleAutoGenerated, "roles stay absent")
	assert.Equal(t, "", shifts["C"].Station)
	assert.False(t, shifts["C"].StationAutoGenerated, "a manual blank is locked")
}

func TestSetStation_Rejections(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.InsertEvent(ctx, &db.CalendarEvent{ID: "e1", EventDate: "2024-12-25", EventType: "DEPARTMENT_CLOSED"}))

	_, err := SetStation(ctx, store, testLogger(), "A", model.MustParseDate("2024-12-25"), "CT")
	assert.True(t, errors.Is(err, ErrDepartmentClosed))

	_, err = SetStation(ctx, store, testLogger(), "Z", monday, "CT")
	assert.True(t, errors.Is(err, ErrUnknownStaff))

	_, err = SetStation(ctx, store, testLogger(), "A", monday, "XRAY")
	assert.True(t, errors.Is(err, ErrUnknownStation))

	all, err := store.ListShifts(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSetStation_AllowedInConfirmedCycle(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.InsertCycle(ctx, &db.Cycle{ID: "c1", StartDate: "2024-06-01", EndDate: "2024-06-30", Confirmed: true}))

	_, err := SetStation(ctx, store, testLogger(), "A", monday, "CT")
	assert.NoError(t, err)
}

func TestToggleRole_Sequence(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	steps := []struct {
		role     model.Role
		expected []string
	}{
		{model.RoleOpening, []string{"OPENING"}},
		{model.RoleAssist, []string{"ASSIST", "OPENING"}},
		{model.RoleLate, []string{"LATE"}},
		{model.RoleOpening, []string{"OPENING"}},
		{model.RoleOpening, []string{}},
	}

	for _, step := range steps {
		record, err := ToggleRole(ctx, store, testLogger(), "A", monday, step.role)
		require.NoError(t, err)
		assert.True(t, record.Roles.IsManual())
		assert.Equal(t, step.expected, shiftsOn(t, store, "2024-06-10")["A"].Roles, "after toggling %s", step.role)
	}
}

func TestToggleRole_Rejections(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.InsertEvent(ctx, &db.CalendarEvent{ID: "e1", EventDate: "2024-06-10", EventType: "DEPARTMENT_CLOSED"}))

	_, err := ToggleRole(ctx, store, testLogger(), "A", monday, model.RoleOpening)
	assert.True(t, errors.Is(err, ErrDepartmentClosed))

	_, err = ToggleRole(ctx, store, testLogger(), "A", tuesday, "JANITOR")
	assert.True(t, errors.Is(err, allocator.ErrUnknownRole))
}
