package services

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// shiftFromDB turns a stored row into a record with facets.
// An empty value flagged auto-generated decodes to an absent facet.
func shiftFromDB(s db.Shift) (model.ShiftRecord, error) {
	date, err := model.ParseDate(s.ShiftDate)
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("shift for %s: %w", s.StaffID, err)
	}

	record := model.ShiftRecord{StaffID: s.StaffID, Date: date}

	switch {
	case s.Station == "" && s.StationAutoGenerated:
	case s.StationAutoGenerated:
		record.Station = model.Generated(s.Station)
	default:
		record.Station = model.Manual(s.Station)
	}

	roles := make([]model.Role, 0, len(s.Roles))
	for _, name := range s.Roles {
		role, err := model.ParseRole(name)
		if err != nil {
			return model.ShiftRecord{}, fmt.Errorf("shift for %s on %s: %w", s.StaffID, s.ShiftDate, err)
		}
		roles = append(roles, role)
	}

	switch {
	case len(roles) == 0 && s.RoleAutoGenerated:
	case s.RoleAutoGenerated:
		record.Roles = model.Generated(model.NewRoleSet(roles...))
	default:
		record.Roles = model.Manual(model.NewRoleSet(roles...))
	}

	return record, nil
}

// shiftToDB is the inverse of shiftFromDB. Absent facets encode as empty auto-generated values.
func shiftToDB(r model.ShiftRecord) db.Shift {
	return db.Shift{
		StaffID:              r.StaffID,
		ShiftDate:            model.FormatDate(r.Date),
		Station:              r.Station.Value(),
		StationAutoGenerated: !r.Station.IsManual(),
		Roles:                r.Roles.Value().Strings(),
		RoleAutoGenerated:    !r.Roles.IsManual(),
	}
}

func shiftsFromDB(rows []db.Shift) ([]model.ShiftRecord, error) {
	records := make([]model.ShiftRecord, 0, len(rows))
	for _, row := range rows {
		record, err := shiftFromDB(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func shiftsToDB(records []model.ShiftRecord) []db.Shift {
	rows := make([]db.Shift, len(records))
	for i, record := range records {
		rows[i] = shiftToDB(record)
	}
	return rows
}

func staffFromDB(s db.Staff) model.StaffMember {
	return model.StaffMember{
		ID:        s.ID,
		Name:      s.Name,
		GroupKey:  s.GroupKey,
		Certified: model.NewNameSet(s.Certified...),
		Learning:  model.NewNameSet(s.Learning...),
		Excluded:  model.NewNameSet(s.Excluded...),
	}
}

func staffToDB(m model.StaffMember) db.Staff {
	return db.Staff{
		ID:        m.ID,
		Name:      m.Name,
		GroupKey:  m.GroupKey,
		Certified: m.Certified.Sorted(),
		Learning:  m.Learning.Sorted(),
		Excluded:  m.Excluded.Sorted(),
	}
}

func eventFromDB(e db.CalendarEvent) (model.CalendarEvent, error) {
	date, err := model.ParseDate(e.EventDate)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	eventType := model.EventType(e.EventType)
	if !eventType.IsValid() {
		return model.CalendarEvent{}, fmt.Errorf("event %s: unknown type %q", e.ID, e.EventType)
	}
	return model.CalendarEvent{ID: e.ID, Date: date, Type: eventType, Note: e.Note}, nil
}

func cycleFromDB(c db.Cycle) (model.SchedulingCycle, error) {
	start, err := model.ParseDate(c.StartDate)
	if err != nil {
		return model.SchedulingCycle{}, fmt.Errorf("cycle %s: %w", c.ID, err)
	}
	end, err := model.ParseDate(c.EndDate)
	if err != nil {
		return model.SchedulingCycle{}, fmt.Errorf("cycle %s: %w", c.ID, err)
	}
	return model.SchedulingCycle{ID: c.ID, Start: start, End: end, Confirmed: c.Confirmed}, nil
}
