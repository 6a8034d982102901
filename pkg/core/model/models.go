package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Station markers. Every other station value is a general work station.
const (
	StationOff        = "OFF"
	StationUnassigned = ""
)

// IsGeneralStation reports whether name is a real work station rather than a marker
func IsGeneralStation(name string) bool {
	return name != StationOff && name != StationUnassigned
}

type Role string

const (
	RoleOpening   Role = "OPENING"
	RoleLate      Role = "LATE"
	RoleAssist    Role = "ASSIST"
	RoleScheduler Role = "SCHEDULER"
)

// AllRoles lists the special roles in their canonical order
var AllRoles = []Role{RoleOpening, RoleLate, RoleAssist, RoleScheduler}

func (r Role) IsValid() bool {
	return slices.Contains(AllRoles, r)
}

// ParseRole parses a role name case-insensitively
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

type EventType string

const (
	EventNationalHoliday  EventType = "NATIONAL_HOLIDAY"
	EventDepartmentClosed EventType = "DEPARTMENT_CLOSED"
	EventMeeting          EventType = "MEETING"
)

func (t EventType) IsValid() bool {
	return t == EventNationalHoliday || t == EventDepartmentClosed || t == EventMeeting
}

// BaseStatus is the default working status derived from a group's rest-day pattern
type BaseStatus string

const (
	BaseStatusWorking BaseStatus = "working"
	BaseStatusOff     BaseStatus = "off"
)

// StaffMember represents a member of staff and what they can be assigned to
type StaffMember struct {
	ID       string
	Name     string
	GroupKey string // Used to look up the rest-day pattern

	// Capability sets over station and role names
	Certified NameSet
	Learning  NameSet
	Excluded  NameSet
}

// CanFill returns true if the staff member is certified or learning for the slot
// and not explicitly excluded from it
func (m StaffMember) CanFill(slot string) bool {
	if m.Excluded.Contains(slot) {
		return false
	}
	return m.Certified.Contains(slot) || m.Learning.Contains(slot)
}

// ShiftRecord is one cell of the roster: a staff member on a date
type ShiftRecord struct {
	StaffID string
	Date    time.Time
	Station Facet[string]
	Roles   Facet[RoleSet]
}

// ShiftKey identifies a ShiftRecord. There is at most one record per key.
type ShiftKey struct {
	StaffID string
	Date    string
}

func (r ShiftRecord) Key() ShiftKey {
	return ShiftKey{StaffID: r.StaffID, Date: FormatDate(r.Date)}
}

// StationName returns the station value, which is StationUnassigned when the facet is absent
func (r ShiftRecord) StationName() string {
	return r.Station.Value()
}

// IsOff returns true if the record marks the staff member off for the day
func (r ShiftRecord) IsOff() bool {
	return r.Station.Value() == StationOff
}

// HoldsStation returns true if the record holds a general work station
func (r ShiftRecord) HoldsStation() bool {
	return IsGeneralStation(r.Station.Value())
}

// HeldRoles returns the roles on the record (empty when the facet is absent)
func (r ShiftRecord) HeldRoles() RoleSet {
	return r.Roles.Value()
}

// Holds returns true if the record holds slot as its station or as one of its roles
func (r ShiftRecord) Holds(slot string) bool {
	if IsGeneralStation(slot) && r.Station.Value() == slot {
		return true
	}
	return r.Roles.Value().Contains(Role(slot))
}

// CalendarEvent represents a dated event on the department calendar
type CalendarEvent struct {
	ID   string
	Date time.Time
	Type EventType
	Note string
}

// SchedulingCycle represents an administrative scheduling window
type SchedulingCycle struct {
	ID        string
	Start     time.Time
	End       time.Time
	Confirmed bool
}

func (c SchedulingCycle) Range() DateRange {
	return NewDateRange(c.Start, c.End)
}
