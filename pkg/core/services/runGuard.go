package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ErrRunInProgress is returned when an assignment run overlaps one already in flight
var ErrRunInProgress = errors.New("an assignment run is already in progress for an overlapping range")

// RunGuard tracks in-flight assignment runs in this process
type RunGuard struct {
	mu     sync.Mutex
	active map[string]model.DateRange
}

func NewRunGuard() *RunGuard {
	return &RunGuard{active: make(map[string]model.DateRange)}
}

var defaultRunGuard = NewRunGuard()

// Acquire registers a run over r. The returned release must be called when the run ends.
func (g *RunGuard) Acquire(runID string, r model.DateRange) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, active := range g.active {
		if active.Overlaps(r) {
			return nil, fmt.Errorf("%w: run %s covers %s", ErrRunInProgress, id, active)
		}
	}
	g.active[runID] = r

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.active, runID)
	}, nil
}
