package allocator

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

const engineCriterionName = "Engine"

// ValidateOutcome checks the assignments made by a run.
//
// The engine checks what no criterion owns: manual facets are never rewritten
// and no assigned slot ends the run with two holders on the same date.
// Capability, availability and role conflicts are reported by the criteria's
// own ValidateRunState, appended after.
func ValidateOutcome(state *RunState, criteria []Criterion) []AssignmentValidationError {
	var errs []AssignmentValidationError

	for _, assignment := range state.assignments {
		fail := func(description string) {
			errs = append(errs, AssignmentValidationError{
				Date:          model.FormatDate(assignment.Slot.Date),
				StaffID:       assignment.StaffID,
				Slot:          assignment.Slot.Name,
				CriterionName: engineCriterionName,
				Description:   description,
			})
		}

		if assignment.Before.Station.IsManual() && assignment.After.Station != assignment.Before.Station {
			fail("manual station was overwritten")
		}
		if assignment.Before.Roles.IsManual() && !assignment.After.Roles.IsManual() {
			fail("manual roles were overwritten")
		}
		if holders := countHolders(state, assignment.Slot); holders > 1 {
			fail(fmt.Sprintf("slot has %d holders on the same date", holders))
		}
	}

	for _, criterion := range criteria {
		errs = append(errs, criterion.ValidateRunState(state)...)
	}

	return errs
}

func countHolders(state *RunState, slot Slot) int {
	holders := 0
	for _, record := range state.current.onDate(slot.Date) {
		if record.Holds(slot.Name) {
			holders++
		}
	}
	return holders
}
