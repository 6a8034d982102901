package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func staffHeader() []interface{} {
	return []interface{}{"Staff ID", "Name", "Group", "Certified", "Learning", "Excluded"}
}

func TestParseStaff(t *testing.T) {
	raw := [][]interface{}{
		staffHeader(),
		{"s1", "Alice Smith", "weekday", "CT, MRI, opening", "US", ""},
		{"", "", "", "", "", ""},
		{"s2", "", "rota-a", "CT", "", "CT"},
		{"s3", "Carol"}, // Short row
	}

	staff, err := parseStaff(raw)
	require.NoError(t, err)
	require.Len(t, staff, 3)

	alice := staff[0]
	assert.Equal(t, "s1", alice.ID)
	assert.Equal(t, "Alice Smith", alice.Name)
	assert.Equal(t, "weekday", alice.GroupKey)
	assert.Equal(t, []string{"CT", "MRI", "OPENING"}, alice.Certified.Sorted())
	assert.True(t, alice.Learning.Contains("US"))
	assert.Empty(t, alice.Excluded)

	assert.Equal(t, "s2", staff[1].Name, "name defaults to the ID")
	assert.False(t, staff[1].CanFill("CT"))

	assert.Equal(t, "Carol", staff[2].Name)
	assert.Empty(t, staff[2].Certified)
}

func TestParseStaff_ColumnOrderDoesNotMatter(t *testing.T) {
	raw := [][]interface{}{
		{"Excluded", "Learning", "Certified", "Group", "Name", "Staff ID"},
		{"", "", "CT", "g", "Bob", "s9"},
	}

	staff, err := parseStaff(raw)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "s9", staff[0].ID)
	assert.True(t, staff[0].CanFill("CT"))
}

func TestParseStaff_MissingColumn(t *testing.T) {
	raw := [][]interface{}{{"Staff ID", "Name", "Group", "Certified", "Learning"}}
	_, err := parseStaff(raw)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Excluded")
}

func TestParseStaff_DuplicateID(t *testing.T) {
	raw := [][]interface{}{
		staffHeader(),
		{"s1", "Alice", "", "CT", "", ""},
		{"s1", "Alicia", "", "MRI", "", ""},
	}
	_, err := parseStaff(raw)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate staff ID")
}

func TestGenerateTabTitle(t *testing.T) {
	title := generateTabTitle(model.MustParseDate("2024-06-10"), model.MustParseDate("2024-06-14"))
	assert.Equal(t, "Mon Jun 10 2024 - Fri Jun 14 2024", title)
}

func TestBuildRosterRows(t *testing.T) {
	roster := &PublishedRoster{
		Start: model.MustParseDate("2024-06-10"),
		End:   model.MustParseDate("2024-06-11"),
		Dates: model.NewDateRange(model.MustParseDate("2024-06-10"), model.MustParseDate("2024-06-11")).Days(),
		Rows: []PublishedRosterRow{
			{StaffName: "Alice", Cells: []string{"CT", "OFF"}},
			{StaffName: "Bob", Cells: []string{"MRI + LATE"}},
		},
	}

	rows := buildRosterRows(roster)
	require.Len(t, rows, 3)
	assert.Equal(t, []interface{}{"Staff", "Mon 10 Jun", "Tue 11 Jun"}, rows[0])
	assert.Equal(t, []interface{}{"Alice", "CT", "OFF"}, rows[1])
	assert.Equal(t, []interface{}{"Bob", "MRI + LATE", ""}, rows[2])
}

func TestFormatCell(t *testing.T) {
	date := model.MustParseDate("2024-06-10")
	tests := []struct {
		name     string
		record   model.ShiftRecord
		expected string
	}{
		{"empty", model.ShiftRecord{Date: date}, ""},
		{"station", model.ShiftRecord{Date: date, Station: model.Manual("CT")}, "CT"},
		{"off", model.ShiftRecord{Date: date, Station: model.Manual(model.StationOff)}, "OFF"},
		{"roles only", model.ShiftRecord{Date: date, Roles: model.Generated(model.NewRoleSet(model.RoleOpening, model.RoleAssist))}, "ASSIST+OPENING"},
		{"station and role", model.ShiftRecord{Date: date, Station: model.Generated("MRI"), Roles: model.Manual(model.NewRoleSet(model.RoleLate))}, "MRI + LATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCell(tt.record))
		})
	}
}
