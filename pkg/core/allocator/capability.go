package allocator

import "github.com/jakechorley/duty-roster/pkg/core/model"

// CapabilityIndex answers which staff can fill a station or role.
// It is built from the roster snapshot passed in and never changes afterwards.
type CapabilityIndex struct {
	staff []model.StaffMember
	byID  map[string]model.StaffMember
}

func NewCapabilityIndex(staff []model.StaffMember) *CapabilityIndex {
	byID := make(map[string]model.StaffMember, len(staff))
	for _, member := range staff {
		byID[member.ID] = member
	}
	return &CapabilityIndex{staff: staff, byID: byID}
}

// EligibleStaff returns the IDs of staff certified or learning for slotName and not excluded from it
func (ci *CapabilityIndex) EligibleStaff(slotName string) map[string]bool {
	eligible := make(map[string]bool)
	for _, member := range ci.staff {
		if member.CanFill(slotName) {
			eligible[member.ID] = true
		}
	}
	return eligible
}

// IsEligible returns false for unknown staff
func (ci *CapabilityIndex) IsEligible(staffID, slotName string) bool {
	member, ok := ci.byID[staffID]
	if !ok {
		return false
	}
	return member.CanFill(slotName)
}
