package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/db"
)

func TestWorkloadReport(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	require.NoError(t, store.ReplaceStaff(ctx, []db.Staff{
		{ID: "a", Name: "Alice", Certified: []string{"CT", "OPENING"}},
		{ID: "b", Name: "Bob", Certified: []string{"CT"}},
		{ID: "c", Name: "Carol"},
	}))
	require.NoError(t, store.UpsertShifts(ctx, []db.Shift{
		{StaffID: "a", ShiftDate: "2024-06-10", Station: "CT", Roles: []string{"OPENING"}},
		{StaffID: "a", ShiftDate: "2024-06-11", Station: "CT", StationAutoGenerated: true},
		{StaffID: "b", ShiftDate: "2024-06-12", Station: "CT", StationAutoGenerated: true},
		{StaffID: "c", ShiftDate: "2024-06-12", Station: "OFF"},
	}))

	result, err := WorkloadReport(ctx, store, testLogger(), "CT")
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, WorkloadEntry{StaffID: "a", Name: "Alice", Count: 2, Eligible: true}, result.Entries[0])
	assert.Equal(t, WorkloadEntry{StaffID: "b", Name: "Bob", Count: 1, Eligible: true}, result.Entries[1])
	assert.False(t, result.Entries[2].Eligible)
	assert.Equal(t, 1, result.Spread)

	roles, err := WorkloadReport(ctx, store, testLogger(), "opening")
	require.NoError(t, err)
	assert.Equal(t, "OPENING", roles.Slot)
	assert.Equal(t, 1, roles.Entries[0].Count)
	assert.Equal(t, 0, roles.Spread, "only Alice is eligible")

	_, err = WorkloadReport(ctx, store, testLogger(), "OFF")
	assert.Error(t, err)
}
