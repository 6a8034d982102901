package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// WorkloadStore defines the database operations needed for the workload report
type WorkloadStore interface {
	ListStaff(ctx context.Context) ([]db.Staff, error)
	ListShifts(ctx context.Context, from, to string) ([]db.Shift, error)
}

// WorkloadEntry is one staff member's historical count for a slot
type WorkloadEntry struct {
	StaffID  string
	Name     string
	Count    int
	Eligible bool
}

// WorkloadResult is the per-staff count of how often each person held a slot
type WorkloadResult struct {
	Slot    string
	Entries []WorkloadEntry // Highest count first
	// Spread is max minus min count among eligible staff
	Spread int
}

// WorkloadReport counts, for every staff member, the records where they held slot
// as station or role. The counts are the ones the load balancer uses.
func WorkloadReport(ctx context.Context, store WorkloadStore, logger *zap.Logger, slot string) (*WorkloadResult, error) {
	if role, err := model.ParseRole(slot); err == nil {
		slot = string(role)
	}
	if !model.IsGeneralStation(slot) {
		return nil, fmt.Errorf("%q is not a station or role", slot)
	}

	staffRows, err := store.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	staff := make([]model.StaffMember, len(staffRows))
	for i, row := range staffRows {
		staff[i] = staffFromDB(row)
	}

	shiftRows, err := store.ListShifts(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	history, err := shiftsFromDB(shiftRows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	logger.Debug("Counting workload", zap.String("slot", slot), zap.Int("shifts", len(history)))

	balancer := allocator.NewLoadBalancer(history, nil)
	capabilities := allocator.NewCapabilityIndex(staff)

	result := &WorkloadResult{Slot: slot}
	minCount, maxCount := -1, 0
	for _, member := range staff {
		entry := WorkloadEntry{
			StaffID:  member.ID,
			Name:     member.Name,
			Count:    balancer.Count(slot, member.ID),
			Eligible: capabilities.IsEligible(member.ID, slot),
		}
		result.Entries = append(result.Entries, entry)

		if entry.Eligible {
			if minCount == -1 || entry.Count < minCount {
				minCount = entry.Count
			}
			maxCount = max(maxCount, entry.Count)
		}
	}
	if minCount >= 0 {
		result.Spread = maxCount - minCount
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Count > result.Entries[j].Count
	})

	return result, nil
}
