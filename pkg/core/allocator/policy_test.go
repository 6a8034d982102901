package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

var day = model.MustParseDate

type staticRestDays map[string]model.BaseStatus

func (s staticRestDays) BaseStatus(date time.Time, groupKey string) model.BaseStatus {
	if status, ok := s[groupKey]; ok {
		return status
	}
	return model.BaseStatusWorking
}

// firstRandom always picks the first of the sorted tied candidates
type firstRandom struct{}

func (firstRandom) IntN(n int) int { return 0 }

func TestCapabilityIndex(t *testing.T) {
	staff := []model.StaffMember{
		{ID: "a", Certified: model.NewNameSet("CT")},
		{ID: "b", Learning: model.NewNameSet("CT")},
		{ID: "c", Certified: model.NewNameSet("CT"), Excluded: model.NewNameSet("CT")},
		{ID: "d", Certified: model.NewNameSet("MRI")},
	}
	index := NewCapabilityIndex(staff)

	assert.Equal(t, map[string]bool{"a": true, "b": true}, index.EligibleStaff("CT"))
	assert.Equal(t, map[string]bool{"d": true}, index.EligibleStaff("MRI"))
	assert.Empty(t, index.EligibleStaff("US"))

	assert.True(t, index.IsEligible("b", "CT"))
	assert.False(t, index.IsEligible("c", "CT"))
	assert.False(t, index.IsEligible("unknown", "CT"))
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		current  model.RoleSet
		toggled  model.Role
		expected model.RoleSet
	}{
		{"empty takes role", nil, model.RoleLate, model.NewRoleSet(model.RoleLate)},
		{"opening stacks with assist", model.NewRoleSet(model.RoleAssist), model.RoleOpening, model.NewRoleSet(model.RoleOpening, model.RoleAssist)},
		{"assist stacks with opening", model.NewRoleSet(model.RoleOpening), model.RoleAssist, model.NewRoleSet(model.RoleOpening, model.RoleAssist)},
		{"late replaces pair", model.NewRoleSet(model.RoleOpening, model.RoleAssist), model.RoleLate, model.NewRoleSet(model.RoleLate)},
		{"scheduler replaces late", model.NewRoleSet(model.RoleLate), model.RoleScheduler, model.NewRoleSet(model.RoleScheduler)},
		{"opening replaces late", model.NewRoleSet(model.RoleLate), model.RoleOpening, model.NewRoleSet(model.RoleOpening)},
		{"assist replaces scheduler", model.NewRoleSet(model.RoleScheduler), model.RoleAssist, model.NewRoleSet(model.RoleAssist)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile(tt.current, tt.toggled)
			assert.True(t, tt.expected.Equal(result), "expected %s, got %s", tt.expected, result)
			assert.True(t, IsConsistent(result))
		})
	}
}

func TestReconcile_DoesNotModifyInput(t *testing.T) {
	current := model.NewRoleSet(model.RoleAssist)
	_ = Reconcile(current, model.RoleOpening)
	assert.Equal(t, model.NewRoleSet(model.RoleAssist), current)
}

func TestToggleRole_AnySequenceStaysConsistent(t *testing.T) {
	sequence := []model.Role{
		model.RoleOpening, model.RoleAssist, model.RoleLate, model.RoleOpening,
		model.RoleAssist, model.RoleScheduler, model.RoleScheduler, model.RoleAssist,
		model.RoleOpening, model.RoleOpening, model.RoleLate, model.RoleLate,
	}

	var roles model.RoleSet
	for _, role := range sequence {
		roles = ToggleRole(roles, role)
		require.True(t, IsConsistent(roles), "inconsistent set %s after toggling %s", roles, role)
	}
}

func TestToggleRole_RemovesHeldRole(t *testing.T) {
	roles := ToggleRole(model.NewRoleSet(model.RoleOpening, model.RoleAssist), model.RoleOpening)
	assert.Equal(t, model.NewRoleSet(model.RoleAssist), roles)
}

func TestIsConsistent(t *testing.T) {
	assert.True(t, IsConsistent(nil))
	assert.True(t, IsConsistent(model.NewRoleSet(model.RoleScheduler)))
	assert.True(t, IsConsistent(model.NewRoleSet(model.RoleOpening, model.RoleAssist)))
	assert.False(t, IsConsistent(model.NewRoleSet(model.RoleOpening, model.RoleLate)))
	assert.False(t, IsConsistent(model.NewRoleSet(model.RoleAssist, model.RoleScheduler)))
}

func TestAvailabilityPredicate(t *testing.T) {
	staff := []model.StaffMember{
		{ID: "a", GroupKey: "weekday"},
		{ID: "b", GroupKey: "resting"},
		{ID: "c", GroupKey: "weekday"},
		{ID: "d", GroupKey: "weekday"},
	}
	shifts := []model.ShiftRecord{
		{StaffID: "c", Date: day("2024-06-10"), Station: model.Manual(model.StationOff)},
		{StaffID: "d", Date: day("2024-06-10"), Station: model.Manual("CT")},
	}
	events := []model.CalendarEvent{
		{ID: "e1", Date: day("2024-06-12"), Type: model.EventDepartmentClosed},
		{ID: "e2", Date: day("2024-06-13"), Type: model.EventMeeting},
	}
	predicate := NewAvailabilityPredicate(Snapshot{
		Staff:    staff,
		Events:   events,
		Shifts:   shifts,
		RestDays: staticRestDays{"resting": model.BaseStatusOff},
	})

	assert.True(t, predicate.IsAvailable("a", day("2024-06-10")))
	assert.False(t, predicate.IsAvailable("b", day("2024-06-10")), "rest day")
	assert.False(t, predicate.IsAvailable("c", day("2024-06-10")), "marked off")
	assert.True(t, predicate.IsAvailable("c", day("2024-06-11")))
	assert.True(t, predicate.IsAvailable("d", day("2024-06-10")), "holding a station is not unavailability")
	assert.False(t, predicate.IsAvailable("a", day("2024-06-12")), "department closed")
	assert.True(t, predicate.IsAvailable("a", day("2024-06-13")), "meetings do not close the department")
	assert.False(t, predicate.IsAvailable("unknown", day("2024-06-10")))

	assert.True(t, predicate.IsClosed(day("2024-06-12")))
	assert.False(t, predicate.IsClosed(day("2024-06-13")))
}

func TestAvailabilityPredicate_NilRestDaysMeansWorking(t *testing.T) {
	predicate := NewAvailabilityPredicate(Snapshot{Staff: []model.StaffMember{{ID: "a", GroupKey: "g"}}})
	assert.Equal(t, model.BaseStatusWorking, predicate.BaseStatus("a", day("2024-06-10")))
	assert.True(t, predicate.IsAvailable("a", day("2024-06-10")))
}

func TestCycleLockGate(t *testing.T) {
	gate := NewCycleLockGate([]model.SchedulingCycle{
		{ID: "june", Start: day("2024-06-01"), End: day("2024-06-14"), Confirmed: true},
		{ID: "july", Start: day("2024-07-01"), End: day("2024-07-14"), Confirmed: false},
	})

	assert.True(t, gate.IsLocked(day("2024-06-01")))
	assert.True(t, gate.IsLocked(day("2024-06-14")))
	assert.False(t, gate.IsLocked(day("2024-06-15")), "outside any cycle")
	assert.False(t, gate.IsLocked(day("2024-07-05")), "cycle not confirmed")

	err := gate.CheckRange(model.NewDateRange(day("2024-06-10"), day("2024-06-20")))
	require.ErrorIs(t, err, ErrCycleLocked)
	assert.Contains(t, err.Error(), "june")

	assert.NoError(t, gate.CheckRange(model.NewDateRange(day("2024-06-15"), day("2024-07-14"))))
}

func TestLoadBalancer_PicksLeastLoaded(t *testing.T) {
	history := []model.ShiftRecord{
		{StaffID: "a", Date: day("2024-06-01"), Station: model.Generated("CT")},
		{StaffID: "a", Date: day("2024-06-02"), Station: model.Manual("CT")},
		{StaffID: "b", Date: day("2024-06-03"), Station: model.Generated("CT")},
		{StaffID: "c", Date: day("2024-06-03"), Roles: model.Manual(model.NewRoleSet(model.RoleOpening))},
		{StaffID: "c", Date: day("2024-06-04"), Station: model.Manual(model.StationOff)},
	}
	lb := NewLoadBalancer(history, firstRandom{})

	assert.Equal(t, 2, lb.Count("CT", "a"))
	assert.Equal(t, 1, lb.Count("CT", "b"))
	assert.Equal(t, 1, lb.Count(string(model.RoleOpening), "c"))
	assert.Equal(t, 0, lb.Count(model.StationOff, "c"), "markers are not counted")

	picked, err := lb.PickCandidate("CT", map[string]bool{"a": true, "b": true})
	require.NoError(t, err)
	assert.Equal(t, "b", picked)

	lb.Record("CT", "b")
	lb.Record("CT", "b")
	picked, err = lb.PickCandidate("CT", map[string]bool{"a": true, "b": true})
	require.NoError(t, err)
	assert.Equal(t, "a", picked)
}

func TestLoadBalancer_EmptyCandidates(t *testing.T) {
	lb := NewLoadBalancer(nil, firstRandom{})
	_, err := lb.PickCandidate("CT", map[string]bool{})
	assert.ErrorIs(t, err, ErrNoEligibleCandidate)

	_, err = lb.PickCandidate("CT", map[string]bool{"a": false})
	assert.ErrorIs(t, err, ErrNoEligibleCandidate)
}

func TestLoadBalancer_SeededTieBreakIsReproducible(t *testing.T) {
	candidates := map[string]bool{"a": true, "b": true, "c": true, "d": true}

	pick := func(seed uint64) []string {
		lb := NewLoadBalancer(nil, NewSeededRandom(seed))
		var picks []string
		for range 8 {
			picked, err := lb.PickCandidate("CT", candidates)
			require.NoError(t, err)
			lb.Record("CT", picked)
			picks = append(picks, picked)
		}
		return picks
	}

	first := pick(42)
	assert.Equal(t, first, pick(42))

	// Every candidate is picked twice over eight rounds
	counts := make(map[string]int)
	for _, picked := range first {
		counts[picked]++
	}
	assert.Equal(t, map[string]int{"a": 2, "b": 2, "c": 2, "d": 2}, counts)
}

func TestGeneralStations(t *testing.T) {
	assert.Equal(t, []string{"CT", "MRI"}, generalStations([]string{"CT", model.StationOff, "", "MRI", "CT"}))
}

func TestUnmetSlotReason(t *testing.T) {
	assert.Equal(t, "no staff on roster", UnmetSlot{}.Reason())
	unmet := UnmetSlot{Vetoes: map[string]int{"Capability": 2, "Availability": 1}}
	assert.Equal(t, "no eligible candidate (Availability: 1, Capability: 2)", unmet.Reason())
}
