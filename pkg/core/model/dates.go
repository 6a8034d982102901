package model

import (
	"fmt"
	"time"
)

// DateLayout is the format used for dates everywhere in the roster
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// MustParseDate is ParseDate for literals in tests and fixtures
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to its calendar day at midnight UTC
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// IsValid returns false when the range starts after it ends
func (r DateRange) IsValid() bool {
	return !r.Start.After(r.End)
}

// Days returns every date in the range in order. An invalid range has no days.
func (r DateRange) Days() []time.Time {
	if !r.IsValid() {
		return nil
	}
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) Contains(date time.Time) bool {
	d := Day(date)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", FormatDate(r.Start), FormatDate(r.End))
}
