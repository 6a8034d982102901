package criteria

import "github.com/jakechorley/duty-roster/pkg/core/allocator"

// Defaults returns the criteria every production run uses, in evaluation order.
// Unmet-slot diagnostics attribute each rejected candidate to the first criterion in this list that vetoed them.
func Defaults() []allocator.Criterion {
	return []allocator.Criterion{
		NewCapabilityCriterion(),
		NewAvailabilityCriterion(),
		NewStationCellCriterion(),
		NewRoleConflictCriterion(),
	}
}
