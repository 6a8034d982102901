package db

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// NotifyingStore wraps a Database and publishes a ChangeEvent after every
// successful write. Failed writes publish nothing.
type NotifyingStore struct {
	Database
	broker *Broker
	now    func() time.Time
}

// NewNotifyingStore decorates inner so writes are announced on broker
func NewNotifyingStore(inner Database, broker *Broker) *NotifyingStore {
	return &NotifyingStore{Database: inner, broker: broker, now: time.Now}
}

// Broker returns the broker events are published on
func (n *NotifyingStore) Broker() *Broker {
	return n.broker
}

func (n *NotifyingStore) publish(kind ChangeKind, shifts []Shift) {
	n.broker.Publish(ChangeEvent{
		ID:     uuid.New().String(),
		Kind:   kind,
		Shifts: shifts,
		At:     n.now().UTC(),
	})
}

func (n *NotifyingStore) UpsertShifts(ctx context.Context, shifts []Shift) error {
	if err := n.Database.UpsertShifts(ctx, shifts); err != nil {
		return err
	}
	if len(shifts) > 0 {
		n.publish(ChangeShifts, slices.Clone(shifts))
	}
	return nil
}

func (n *NotifyingStore) ReplaceStaff(ctx context.Context, staff []Staff) error {
	if err := n.Database.ReplaceStaff(ctx, staff); err != nil {
		return err
	}
	n.publish(ChangeStaff, nil)
	return nil
}

func (n *NotifyingStore) InsertEvent(ctx context.Context, event *CalendarEvent) error {
	if err := n.Database.InsertEvent(ctx, event); err != nil {
		return err
	}
	n.publish(ChangeEvents, nil)
	return nil
}

func (n *NotifyingStore) InsertCycle(ctx context.Context, cycle *Cycle) error {
	if err := n.Database.InsertCycle(ctx, cycle); err != nil {
		return err
	}
	n.publish(ChangeCycles, nil)
	return nil
}

func (n *NotifyingStore) SetCycleConfirmed(ctx context.Context, id string, confirmed bool) error {
	if err := n.Database.SetCycleConfirmed(ctx, id, confirmed); err != nil {
		return err
	}
	n.publish(ChangeCycles, nil)
	return nil
}

func (n *NotifyingStore) ReplaceStations(ctx context.Context, stations []string) error {
	if err := n.Database.ReplaceStations(ctx, stations); err != nil {
		return err
	}
	n.publish(ChangeStations, nil)
	return nil
}
