package criteria

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// AvailabilityCriterion rules out staff who are off on the slot's date.
// Rest days, department closures and OFF records all count as off.
type AvailabilityCriterion struct{}

func NewAvailabilityCriterion() *AvailabilityCriterion {
	return &AvailabilityCriterion{}
}

func (c *AvailabilityCriterion) Name() string {
	return "Availability"
}

func (c *AvailabilityCriterion) IsCandidateValid(state *allocator.RunState, staffID string, slot allocator.Slot) bool {
	return state.Availability().IsAvailable(staffID, slot.Date)
}

func (c *AvailabilityCriterion) ValidateRunState(state *allocator.RunState) []allocator.AssignmentValidationError {
	var errs []allocator.AssignmentValidationError
	for _, assignment := range state.Assignments() {
		if state.Availability().IsAvailable(assignment.StaffID, assignment.Slot.Date) {
			continue
		}
		errs = append(errs, allocator.AssignmentValidationError{
			Date:          model.FormatDate(assignment.Slot.Date),
			StaffID:       assignment.StaffID,
			Slot:          assignment.Slot.Name,
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("staff %s is not available on %s", assignment.StaffID, model.FormatDate(assignment.Slot.Date)),
		})
	}
	return errs
}
