package allocator

// Criterion defines the interface for assignment criteria.
// The engine runs every criterion for every candidate; a single false rules the candidate out.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsCandidateValid determines if staffID may fill slot given the current run state.
	// This acts as a veto: if ANY criterion returns false, the candidate is skipped.
	IsCandidateValid(state *RunState, staffID string, slot Slot) bool

	// ValidateRunState checks the records planned by the run against this criterion's requirements.
	// Returns a slice of validation errors (empty if all valid).
	ValidateRunState(state *RunState) []AssignmentValidationError
}

// filterCandidates returns the staff accepted by every criterion, plus the count of staff
// rejected by each criterion (attributed to the first one that rejected them)
func filterCandidates(state *RunState, criteria []Criterion, slot Slot) (map[string]bool, map[string]int) {
	candidates := make(map[string]bool)
	vetoes := make(map[string]int)

	for _, member := range state.Staff() {
		accepted := true
		for _, criterion := range criteria {
			if !criterion.IsCandidateValid(state, member.ID, slot) {
				vetoes[criterion.Name()]++
				accepted = false
				break
			}
		}
		if accepted {
			candidates[member.ID] = true
		}
	}

	return candidates, vetoes
}
