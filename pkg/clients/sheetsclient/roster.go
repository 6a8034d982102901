package sheetsclient

import (
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

const tabDateLayout = "Mon Jan 02 2006"

// PublishedRosterRow is one staff member's line of the published roster
type PublishedRosterRow struct {
	StaffName string
	Cells     []string // One per date, in order
}

// PublishedRoster is the grid written to the roster spreadsheet
type PublishedRoster struct {
	Start time.Time
	End   time.Time
	Dates []time.Time
	Rows  []PublishedRosterRow
}

// PublishRoster writes the roster to a tab named after its date range.
// The tab is created if missing; an existing tab is cleared and rewritten.
func (c *Client) PublishRoster(spreadsheetID string, roster *PublishedRoster) (string, error) {
	tabTitle := generateTabTitle(roster.Start, roster.End)

	exists, err := c.hasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return "", err
	}

	if exists {
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, tabTitle, &sheets.ClearValuesRequest{}).Do()
		if err != nil {
			return "", fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
		return "", fmt.Errorf("failed to create tab: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: buildRosterRows(roster)}
	_, err = c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		fmt.Sprintf("%s!A1", tabTitle),
		valueRange,
	).ValueInputOption("RAW").Do()
	if err != nil {
		return "", fmt.Errorf("failed to write roster: %w", err)
	}

	return tabTitle, nil
}

// generateTabTitle creates a tab title in the format "Mon Jun 10 2024 - Fri Jun 14 2024"
func generateTabTitle(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format(tabDateLayout), end.Format(tabDateLayout))
}

// buildRosterRows lays the roster out with a header row of dates and one row per staff member
func buildRosterRows(roster *PublishedRoster) [][]interface{} {
	header := []interface{}{"Staff"}
	for _, date := range roster.Dates {
		header = append(header, date.Format("Mon 02 Jan"))
	}

	rows := [][]interface{}{header}
	for _, row := range roster.Rows {
		sheetRow := []interface{}{row.StaffName}
		for i := range roster.Dates {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			sheetRow = append(sheetRow, cell)
		}
		rows = append(rows, sheetRow)
	}

	return rows
}

// FormatCell renders a roster record as spreadsheet text, e.g. "CT + OPENING+ASSIST"
func FormatCell(record model.ShiftRecord) string {
	station := record.StationName()
	roles := record.HeldRoles()
	switch {
	case station == "" && len(roles) == 0:
		return ""
	case len(roles) == 0:
		return station
	case station == "":
		return roles.String()
	default:
		return station + " + " + roles.String()
	}
}
