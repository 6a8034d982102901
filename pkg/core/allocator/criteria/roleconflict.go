package criteria

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// RoleConflictCriterion only gives a role to staff who can take it without losing another.
//
// Validity (role slots only):
//   - Returns false if the staff member's roles for the day were set manually
//   - Returns false if the staff member already holds the role
//   - Returns false if merging the role through the conflict policy would drop a role they hold
//
// Station slots are always valid.
type RoleConflictCriterion struct{}

func NewRoleConflictCriterion() *RoleConflictCriterion {
	return &RoleConflictCriterion{}
}

func (c *RoleConflictCriterion) Name() string {
	return "RoleConflict"
}

func (c *RoleConflictCriterion) IsCandidateValid(state *allocator.RunState, staffID string, slot allocator.Slot) bool {
	if slot.Kind != allocator.SlotRole {
		return true
	}
	record, ok := state.Record(staffID, slot.Date)
	if !ok {
		return true
	}

	if record.Roles.IsManual() {
		return false
	}

	role := model.Role(slot.Name)
	held := record.HeldRoles()
	if held.Contains(role) {
		return false
	}
	return allocator.Reconcile(held, role).ContainsAll(held)
}

func (c *RoleConflictCriterion) ValidateRunState(state *allocator.RunState) []allocator.AssignmentValidationError {
	var errs []allocator.AssignmentValidationError
	for _, assignment := range state.Assignments() {
		if assignment.Slot.Kind != allocator.SlotRole {
			continue
		}
		roles := assignment.After.HeldRoles()
		description := ""
		switch {
		case assignment.Before.Roles.IsManual():
			description = fmt.Sprintf("manual roles %s were changed to %s", assignment.Before.HeldRoles(), roles)
		case !allocator.IsConsistent(roles) || !roles.ContainsAll(assignment.Before.HeldRoles()):
			description = fmt.Sprintf("roles %s became %s", assignment.Before.HeldRoles(), roles)
		default:
			continue
		}
		errs = append(errs, allocator.AssignmentValidationError{
			Date:          model.FormatDate(assignment.Slot.Date),
			StaffID:       assignment.StaffID,
			Slot:          assignment.Slot.Name,
			CriterionName: c.Name(),
			Description:   description,
		})
	}
	return errs
}
