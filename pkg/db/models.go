package db

// Shift is the stored form of one staff member's roster cell for a day.
// Station and roles each carry a provenance flag: an empty value flagged as
// auto-generated is an absent facet, an empty value flagged manual is a locked blank.
type Shift struct {
	StaffID              string
	ShiftDate            string
	Station              string
	StationAutoGenerated bool
	Roles                []string
	RoleAutoGenerated    bool
}

// Staff represents a staff roster record
type Staff struct {
	ID        string
	Name      string
	GroupKey  string
	Certified []string
	Learning  []string
	Excluded  []string
}

// CalendarEvent represents a dated department event
type CalendarEvent struct {
	ID        string
	EventDate string
	EventType string
	Note      string
}

// Cycle represents a scheduling cycle record
type Cycle struct {
	ID        string
	StartDate string
	EndDate   string
	Confirmed bool
}
