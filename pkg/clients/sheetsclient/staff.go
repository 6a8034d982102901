package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Expected column names in the staff sheet
const (
	colStaffID   = "Staff ID"
	colName      = "Name"
	colGroup     = "Group"
	colCertified = "Certified"
	colLearning  = "Learning"
	colExcluded  = "Excluded"
)

var staffFields = []string{colStaffID, colName, colGroup, colCertified, colLearning, colExcluded}

// ListStaff retrieves and parses the staff roster from the configured spreadsheet
func (c *Client) ListStaff(cfg *config.Config) ([]model.StaffMember, error) {
	if cfg.StaffSheetID == "" {
		return nil, fmt.Errorf("staffSheetID is not configured")
	}

	values, err := c.GetValues(cfg.StaffSheetID, cfg.StaffTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	staff, err := parseStaff(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse staff: %w", err)
	}

	return staff, nil
}

// parseStaff converts raw spreadsheet data into staff members.
// Capability cells hold comma-separated station and role names.
func parseStaff(raw [][]interface{}) ([]model.StaffMember, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	fieldIndexes := make(map[string]int)
	for _, field := range staffFields {
		index := findColumnIndex(raw[0], field)
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index := fieldIndexes[field]
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	seen := make(map[string]int)
	staff := make([]model.StaffMember, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := getField(colStaffID, row)
		// Skip empty rows
		if id == "" {
			continue
		}
		if first, ok := seen[id]; ok {
			return nil, fmt.Errorf("duplicate staff ID %q in rows %d and %d", id, first, i)
		}
		seen[id] = i

		name := getField(colName, row)
		if name == "" {
			name = id
		}

		staff = append(staff, model.StaffMember{
			ID:        id,
			Name:      name,
			GroupKey:  getField(colGroup, row),
			Certified: parseNameList(getField(colCertified, row)),
			Learning:  parseNameList(getField(colLearning, row)),
			Excluded:  parseNameList(getField(colExcluded, row)),
		})
	}

	return staff, nil
}

// parseNameList splits "CT, MRI, opening" into a set. Role names are normalised to upper case.
func parseNameList(cell string) model.NameSet {
	names := strings.Split(cell, ",")
	for i, name := range names {
		name = strings.TrimSpace(name)
		if role, err := model.ParseRole(name); err == nil {
			name = string(role)
		}
		names[i] = name
	}
	return model.NewNameSet(names...)
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && strings.TrimSpace(str) == columnName {
			return i
		}
	}
	return -1
}
