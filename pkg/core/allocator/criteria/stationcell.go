package criteria

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// StationCellCriterion only gives a station to staff whose station cell is free for the engine.
//
// Validity (station slots only):
//   - Returns true if the staff member has no station value for the date
//   - Returns true if the station value was generated and is unassigned
//   - Returns false for any other station, for OFF, and for any manual value, including a manual blank
//
// Role slots are always valid.
type StationCellCriterion struct{}

func NewStationCellCriterion() *StationCellCriterion {
	return &StationCellCriterion{}
}

func (c *StationCellCriterion) Name() string {
	return "StationCell"
}

func (c *StationCellCriterion) IsCandidateValid(state *allocator.RunState, staffID string, slot allocator.Slot) bool {
	if slot.Kind != allocator.SlotStation {
		return true
	}
	record, ok := state.Record(staffID, slot.Date)
	if !ok {
		return true
	}
	return cellIsOpen(record)
}

func cellIsOpen(record model.ShiftRecord) bool {
	switch record.Station.Origin() {
	case model.OriginNone:
		return true
	case model.OriginGenerated:
		return record.StationName() == model.StationUnassigned
	default:
		return false
	}
}

// ValidateRunState checks that every station assignment landed on a cell that was open before the run
func (c *StationCellCriterion) ValidateRunState(state *allocator.RunState) []allocator.AssignmentValidationError {
	var errs []allocator.AssignmentValidationError
	for _, assignment := range state.Assignments() {
		if assignment.Slot.Kind != allocator.SlotStation {
			continue
		}
		original, ok := state.Original(assignment.StaffID, assignment.Slot.Date)
		if !ok || cellIsOpen(original) {
			continue
		}
		errs = append(errs, allocator.AssignmentValidationError{
			Date:          model.FormatDate(assignment.Slot.Date),
			StaffID:       assignment.StaffID,
			Slot:          assignment.Slot.Name,
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("station cell already held %q (%s)", original.StationName(), original.Station.Origin()),
		})
	}
	return errs
}
