package db

import (
	"sync"
	"time"
)

// ChangeKind names the kind of data a write touched
type ChangeKind string

const (
	ChangeShifts   ChangeKind = "shifts"
	ChangeStaff    ChangeKind = "staff"
	ChangeEvents   ChangeKind = "events"
	ChangeCycles   ChangeKind = "cycles"
	ChangeStations ChangeKind = "stations"
)

// ChangeEvent describes one committed write
type ChangeEvent struct {
	ID     string
	Kind   ChangeKind
	Shifts []Shift // Set for ChangeShifts
	At     time.Time
}

// Broker fans change events out to subscribers. Delivery is synchronous and in
// subscription order; a subscriber must not publish from its callback.
type Broker struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(ChangeEvent)
	order       []int
}

// NewBroker creates a broker with no subscribers
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[int]func(ChangeEvent))}
}

// Subscribe registers fn and returns a function that removes it
func (b *Broker) Subscribe(fn func(ChangeEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			for i, existing := range b.order {
				if existing == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers event to every current subscriber
func (b *Broker) Publish(event ChangeEvent) {
	b.mu.RLock()
	fns := make([]func(ChangeEvent), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subscribers[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}
