package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/restdays"
	"github.com/jakechorley/duty-roster/pkg/db"
)

func rosterFixture(t *testing.T) *db.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := seedStore(t)
	require.NoError(t, store.ReplaceStaff(ctx, []db.Staff{
		{ID: "A", Name: "Alice", GroupKey: "weekday", Certified: []string{"CT"}},
		{ID: "B", Name: "Bob", GroupKey: "weekday", Certified: []string{"MRI"}},
	}))
	require.NoError(t, store.UpsertShifts(ctx, []db.Shift{
		{StaffID: "A", ShiftDate: "2024-06-14", Station: "CT", StationAutoGenerated: true, Roles: []string{"OPENING"}},
	}))
	require.NoError(t, store.InsertEvent(ctx, &db.CalendarEvent{ID: "e1", EventDate: "2024-06-17", EventType: "DEPARTMENT_CLOSED"}))
	require.NoError(t, store.InsertCycle(ctx, &db.Cycle{ID: "c1", StartDate: "2024-06-14", EndDate: "2024-06-14", Confirmed: true}))
	return store
}

func weekdayCalendar(t *testing.T) *restdays.Calendar {
	t.Helper()
	calendar, err := restdays.New([]restdays.Pattern{{Group: "weekday", RRule: "FREQ=WEEKLY;BYDAY=SA,SU"}})
	require.NoError(t, err)
	return calendar
}

func TestViewRoster(t *testing.T) {
	store := rosterFixture(t)
	friday := model.MustParseDate("2024-06-14")
	nextMonday := model.MustParseDate("2024-06-17")

	view, err := ViewRoster(context.Background(), store, weekdayCalendar(t), testLogger(), friday, nextMonday)
	require.NoError(t, err)

	require.Len(t, view.Dates, 4)
	require.Len(t, view.Rows, 2)
	assert.True(t, view.IsLocked(friday))
	assert.True(t, view.IsClosed(nextMonday))
	require.Len(t, view.Events, 1)

	alice := view.Rows[0]
	assert.Equal(t, "A", alice.Staff.ID)
	assert.Equal(t, "CT + OPENING", view.CellText(view.Dates[0], alice.Cells[0]))
	assert.True(t, alice.Cells[1].RestDay)
	assert.Equal(t, "OFF", view.CellText(view.Dates[1], alice.Cells[1]))
	assert.Equal(t, "CLOSED", view.CellText(view.Dates[3], alice.Cells[3]))

	bob := view.Rows[1]
	assert.Equal(t, "", view.CellText(view.Dates[0], bob.Cells[0]))
}

type mockPublisher struct {
	spreadsheetID string
	roster        *sheetsclient.PublishedRoster
	err           error
}

func (m *mockPublisher) PublishRoster(spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error) {
	m.spreadsheetID = spreadsheetID
	m.roster = roster
	return "Fri Jun 14 2024 - Mon Jun 17 2024", m.err
}

func TestPublishRoster(t *testing.T) {
	store := rosterFixture(t)
	publisher := &mockPublisher{}
	cfg := &config.Config{RosterSheetID: "roster-sheet"}

	result, err := PublishRoster(context.Background(), store, weekdayCalendar(t), publisher, cfg, testLogger(),
		model.MustParseDate("2024-06-14"), model.MustParseDate("2024-06-17"))
	require.NoError(t, err)

	assert.Equal(t, "roster-sheet", publisher.spreadsheetID)
	assert.Equal(t, "Fri Jun 14 2024 - Mon Jun 17 2024", result.TabTitle)
	require.Len(t, publisher.roster.Rows, 2)
	assert.Equal(t, "Alice", publisher.roster.Rows[0].StaffName)
	assert.Equal(t, []string{"CT + OPENING", "OFF", "OFF", "CLOSED"}, publisher.roster.Rows[0].Cells)
	assert.Equal(t, []string{"", "OFF", "OFF", "CLOSED"}, publisher.roster.Rows[1].Cells)
}

func TestPublishRoster_Errors(t *testing.T) {
	store := rosterFixture(t)
	start, end := model.MustParseDate("2024-06-14"), model.MustParseDate("2024-06-17")

	_, err := PublishRoster(context.Background(), store, nil, &mockPublisher{}, &config.Config{}, testLogger(), start, end)
	assert.Error(t, err, "roster sheet must be configured")

	failing := &mockPublisher{err: errors.New("quota exceeded")}
	_, err = PublishRoster(context.Background(), store, nil, failing, &config.Config{RosterSheetID: "x"}, testLogger(), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
