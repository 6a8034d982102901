package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_SubscribeAndUnsubscribe(t *testing.T) {
	broker := NewBroker()

	var first, second []ChangeKind
	unsubscribe := broker.Subscribe(func(e ChangeEvent) { first = append(first, e.Kind) })
	broker.Subscribe(func(e ChangeEvent) { second = append(second, e.Kind) })

	broker.Publish(ChangeEvent{Kind: ChangeShifts})
	unsubscribe()
	unsubscribe()
	broker.Publish(ChangeEvent{Kind: ChangeStaff})

	assert.Equal(t, []ChangeKind{ChangeShifts}, first)
	assert.Equal(t, []ChangeKind{ChangeShifts, ChangeStaff}, second)
}

func TestNotifyingStore_PublishesAfterWrites(t *testing.T) {
	ctx := context.Background()
	broker := NewBroker()
	store := NewNotifyingStore(NewMemoryStore(), broker)
	fixed := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	var events []ChangeEvent
	broker.Subscribe(func(e ChangeEvent) { events = append(events, e) })

	shifts := []Shift{{StaffID: "a", ShiftDate: "2024-06-10", Station: "CT", StationAutoGenerated: true}}
	require.NoError(t, store.UpsertShifts(ctx, shifts))
	require.NoError(t, store.InsertCycle(ctx, &Cycle{ID: "c1"}))
	require.NoError(t, store.SetCycleConfirmed(ctx, "c1", true))

	require.Len(t, events, 3)
	assert.Equal(t, ChangeShifts, events[0].Kind)
	assert.Equal(t, shifts, events[0].Shifts)
	assert.Equal(t, fixed, events[0].At)
	assert.NotEmpty(t, events[0].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, ChangeCycles, events[2].Kind)
}

func TestNotifyingStore_SilentOnFailure(t *testing.T) {
	ctx := context.Background()
	broker := NewBroker()
	store := NewNotifyingStore(NewMemoryStore(), broker)

	published := 0
	broker.Subscribe(func(ChangeEvent) { published++ })

	assert.Error(t, store.UpsertShifts(ctx, []Shift{{StaffID: ""}}))
	assert.Error(t, store.SetCycleConfirmed(ctx, "missing", true))
	require.NoError(t, store.UpsertShifts(ctx, nil))

	assert.Zero(t, published)
}
