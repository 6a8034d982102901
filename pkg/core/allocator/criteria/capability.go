package criteria

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// CapabilityCriterion only allows staff certified or learning for a slot.
//
// Validity:
//   - Returns false if the staff member is not certified or learning for the slot
//   - Returns false if the staff member is explicitly excluded from the slot
type CapabilityCriterion struct{}

func NewCapabilityCriterion() *CapabilityCriterion {
	return &CapabilityCriterion{}
}

func (c *CapabilityCriterion) Name() string {
	return "Capability"
}

func (c *CapabilityCriterion) IsCandidateValid(state *allocator.RunState, staffID string, slot allocator.Slot) bool {
	return state.Capabilities().IsEligible(staffID, slot.Name)
}

func (c *CapabilityCriterion) ValidateRunState(state *allocator.RunState) []allocator.AssignmentValidationError {
	var errs []allocator.AssignmentValidationError
	for _, assignment := range state.Assignments() {
		if state.Capabilities().IsEligible(assignment.StaffID, assignment.Slot.Name) {
			continue
		}
		errs = append(errs, allocator.AssignmentValidationError{
			Date:          model.FormatDate(assignment.Slot.Date),
			StaffID:       assignment.StaffID,
			Slot:          assignment.Slot.Name,
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("staff %s is not certified or learning for %s", assignment.StaffID, assignment.Slot.Name),
		})
	}
	return errs
}
