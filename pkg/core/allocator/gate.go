package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// CycleLockGate rejects engine runs over dates inside a confirmed scheduling cycle.
// Confirming and unlocking cycles happens outside the engine; the gate only reads their state.
type CycleLockGate struct {
	cycles []model.SchedulingCycle
}

func NewCycleLockGate(cycles []model.SchedulingCycle) *CycleLockGate {
	return &CycleLockGate{cycles: cycles}
}

// IsLocked returns true if a confirmed cycle covers the date.
// Dates outside every cycle are unlocked.
func (g *CycleLockGate) IsLocked(date time.Time) bool {
	for _, cycle := range g.cycles {
		if cycle.Confirmed && cycle.Range().Contains(date) {
			return true
		}
	}
	return false
}

// CheckRange returns an error wrapping ErrCycleLocked if any date of r is locked
func (g *CycleLockGate) CheckRange(r model.DateRange) error {
	for _, cycle := range g.cycles {
		if cycle.Confirmed && cycle.Range().Overlaps(r) {
			return fmt.Errorf("%w: cycle %s (%s) is confirmed", ErrCycleLocked, cycle.ID, cycle.Range())
		}
	}
	return nil
}
