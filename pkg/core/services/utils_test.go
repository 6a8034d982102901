package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/db"
)

var errStoreDown = errors.New("store unavailable")

// failingUpsertStore wraps a MemoryStore and fails every shift write
type failingUpsertStore struct {
	*db.MemoryStore
	upsertCalls int
}

func (s *failingUpsertStore) UpsertShifts(ctx context.Context, shifts []db.Shift) error {
	s.upsertCalls++
	return errStoreDown
}

// countingStore wraps a MemoryStore and counts shift writes
type countingStore struct {
	*db.MemoryStore
	upsertCalls int
	upserted    []db.Shift
}

func (s *countingStore) UpsertShifts(ctx context.Context, shifts []db.Shift) error {
	s.upsertCalls++
	s.upserted = append(s.upserted, shifts...)
	return s.MemoryStore.UpsertShifts(ctx, shifts)
}

// seedStore returns a store where each station has exactly one capable person
func seedStore(t *testing.T) *db.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := db.NewMemoryStore()

	require.NoError(t, store.ReplaceStaff(ctx, []db.Staff{
		{ID: "A", Name: "Alice", Certified: []string{"CT", "OPENING", "ASSIST"}},
		{ID: "B", Name: "Bob", Certified: []string{"MRI", "LATE"}},
		{ID: "C", Name: "Carol", Learning: []string{"US", "OPENING"}},
	}))
	require.NoError(t, store.ReplaceStations(ctx, []string{"CT", "MRI", "US"}))
	return store
}

func shiftsOn(t *testing.T, store db.ShiftStore, date string) map[string]db.Shift {
	t.Helper()
	rows, err := store.ListShifts(context.Background(), date, date)
	require.NoError(t, err)
	byStaff := make(map[string]db.Shift, len(rows))
	for _, row := range rows {
		byStaff[row.StaffID] = row
	}
	return byStaff
}

func seed(v uint64) *uint64 {
	return &v
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
