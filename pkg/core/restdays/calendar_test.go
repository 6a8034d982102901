package restdays

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func TestCalendar_WeekendGroup(t *testing.T) {
	calendar, err := New([]Pattern{
		{Group: "weekday", RRule: "FREQ=WEEKLY;BYDAY=SA,SU", Anchor: model.MustParseDate("2024-01-01")},
	})
	require.NoError(t, err)

	// 2024-06-08 is a Saturday
	assert.Equal(t, model.BaseStatusOff, calendar.BaseStatus(model.MustParseDate("2024-06-08"), "weekday"))
	assert.Equal(t, model.BaseStatusOff, calendar.BaseStatus(model.MustParseDate("2024-06-09"), "weekday"))
	assert.Equal(t, model.BaseStatusWorking, calendar.BaseStatus(model.MustParseDate("2024-06-10"), "weekday"))

	// Repeat lookups come from the cache and agree
	assert.Equal(t, model.BaseStatusOff, calendar.BaseStatus(model.MustParseDate("2024-06-08"), "weekday"))
}

func TestCalendar_UnknownGroupAlwaysWorks(t *testing.T) {
	calendar, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, model.BaseStatusWorking, calendar.BaseStatus(model.MustParseDate("2024-06-08"), "anyone"))
	assert.Equal(t, 0, calendar.Groups())
}

func TestCalendar_RotatingPattern(t *testing.T) {
	// Every fourth day off, starting from the anchor
	calendar, err := New([]Pattern{
		{Group: "rota-a", RRule: "FREQ=DAILY;INTERVAL=4", Anchor: model.MustParseDate("2024-06-01")},
	})
	require.NoError(t, err)

	r := model.NewDateRange(model.MustParseDate("2024-05-30"), model.MustParseDate("2024-06-10"))
	days := calendar.RestDays("rota-a", r)

	var formatted []string
	for _, d := range days {
		formatted = append(formatted, model.FormatDate(d))
	}
	assert.Equal(t, []string{"2024-06-01", "2024-06-05", "2024-06-09"}, formatted)
}

func TestCalendar_DefaultAnchor(t *testing.T) {
	calendar, err := New([]Pattern{{Group: "g", RRule: "FREQ=WEEKLY;BYDAY=MO"}})
	require.NoError(t, err)
	assert.True(t, calendar.IsRestDay(model.MustParseDate("2024-06-10"), "g"))
	assert.False(t, calendar.IsRestDay(model.MustParseDate("2023-12-25"), "g"), "before the anchor")
}

func TestNew_InvalidRRule(t *testing.T) {
	_, err := New([]Pattern{{Group: "g", RRule: "NOT_A_RULE"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rrule")
}

func TestNew_DuplicateGroup(t *testing.T) {
	_, err := New([]Pattern{
		{Group: "g", RRule: "FREQ=WEEKLY;BYDAY=MO"},
		{Group: "g", RRule: "FREQ=WEEKLY;BYDAY=TU"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
