package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ShiftsUpsertAndRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.UpsertShifts(ctx, []Shift{
		{StaffID: "b", ShiftDate: "2024-06-11", Station: "CT"},
		{StaffID: "a", ShiftDate: "2024-06-11", Station: "MRI", StationAutoGenerated: true},
		{StaffID: "a", ShiftDate: "2024-06-10", Roles: []string{"OPENING"}},
		{StaffID: "a", ShiftDate: "2024-06-12", Station: "OFF"},
	}))

	all, err := store.ListShifts(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-06-10", all[0].ShiftDate)
	assert.Equal(t, "a", all[1].StaffID, "same date is ordered by staff")
	assert.Equal(t, "b", all[2].StaffID)

	ranged, err := store.ListShifts(ctx, "2024-06-11", "2024-06-11")
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	// Upsert replaces the existing record for the key
	require.NoError(t, store.UpsertShifts(ctx, []Shift{{StaffID: "b", ShiftDate: "2024-06-11", Station: "US"}}))
	ranged, err = store.ListShifts(ctx, "2024-06-11", "")
	require.NoError(t, err)
	require.Len(t, ranged, 3)
	assert.Equal(t, "US", ranged[1].Station)
}

func TestMemoryStore_UpsertRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.UpsertShifts(ctx, []Shift{
		{StaffID: "a", ShiftDate: "2024-06-10", Station: "CT"},
		{StaffID: "", ShiftDate: "2024-06-10"},
	})
	require.Error(t, err)

	shifts, err := store.ListShifts(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, shifts, "nothing from a failed batch is applied")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	roles := []string{"OPENING"}
	require.NoError(t, store.UpsertShifts(ctx, []Shift{{StaffID: "a", ShiftDate: "2024-06-10", Roles: roles}}))
	roles[0] = "LATE"

	shifts, err := store.ListShifts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"OPENING"}, shifts[0].Roles)

	shifts[0].Roles[0] = "ASSIST"
	again, err := store.ListShifts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"OPENING"}, again[0].Roles)
}

func TestMemoryStore_Cycles(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.InsertCycle(ctx, &Cycle{ID: "c1", StartDate: "2024-06-01", EndDate: "2024-06-14"}))
	assert.Error(t, store.InsertCycle(ctx, &Cycle{ID: "c1"}))

	require.NoError(t, store.SetCycleConfirmed(ctx, "c1", true))
	cycles, err := store.ListCycles(ctx)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.True(t, cycles[0].Confirmed)

	err = store.SetCycleConfirmed(ctx, "missing", true)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_StaffStationsEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.ReplaceStaff(ctx, []Staff{{ID: "a", Name: "Alice", Certified: []string{"CT"}}}))
	require.NoError(t, store.ReplaceStaff(ctx, []Staff{{ID: "b", Name: "Bob"}}))
	staff, err := store.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "b", staff[0].ID)

	require.NoError(t, store.ReplaceStations(ctx, []string{"CT", "MRI"}))
	stations, err := store.ListStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CT", "MRI"}, stations)

	require.NoError(t, store.InsertEvent(ctx, &CalendarEvent{ID: "e1", EventDate: "2024-12-25", EventType: "DEPARTMENT_CLOSED"}))
	assert.Error(t, store.InsertEvent(ctx, &CalendarEvent{ID: "e1"}))
	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
