package restdays

import (
	"fmt"
	"sync"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// DefaultAnchor is used when a pattern has no anchor date
var DefaultAnchor = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Pattern describes the rest days of a staff group as a recurrence rule.
// Every occurrence of the rule is a rest day for the group.
type Pattern struct {
	Group  string
	RRule  string
	Anchor time.Time // First day the rule applies from (DTSTART)
}

// Calendar answers the base working status of each staff group from its rest-day pattern.
// Groups without a pattern work every day.
type Calendar struct {
	rules map[string]*rrule.RRule

	mu    sync.Mutex
	cache map[string]map[string]bool // group -> date -> rest day
}

// New parses the patterns into a calendar
func New(patterns []Pattern) (*Calendar, error) {
	rules := make(map[string]*rrule.RRule, len(patterns))
	for i, pattern := range patterns {
		if _, exists := rules[pattern.Group]; exists {
			return nil, fmt.Errorf("duplicate rest-day pattern for group %q", pattern.Group)
		}

		rule, err := rrule.StrToRRule(pattern.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for rest-day pattern %d (%s): %w", i, pattern.Group, err)
		}

		anchor := pattern.Anchor
		if anchor.IsZero() {
			anchor = DefaultAnchor
		}
		rule.DTStart(model.Day(anchor))

		rules[pattern.Group] = rule
	}

	return &Calendar{
		rules: rules,
		cache: make(map[string]map[string]bool),
	}, nil
}

// BaseStatus returns off when the date is an occurrence of the group's rule
func (c *Calendar) BaseStatus(date time.Time, groupKey string) model.BaseStatus {
	if c.IsRestDay(date, groupKey) {
		return model.BaseStatusOff
	}
	return model.BaseStatusWorking
}

func (c *Calendar) IsRestDay(date time.Time, groupKey string) bool {
	rule, ok := c.rules[groupKey]
	if !ok {
		return false
	}

	key := model.FormatDate(date)

	c.mu.Lock()
	defer c.mu.Unlock()

	byDate, ok := c.cache[groupKey]
	if !ok {
		byDate = make(map[string]bool)
		c.cache[groupKey] = byDate
	}
	if rest, ok := byDate[key]; ok {
		return rest
	}

	start := model.Day(date)
	end := start.Add(24*time.Hour - time.Nanosecond)
	rest := len(rule.Between(start, end, true)) > 0
	byDate[key] = rest
	return rest
}

// RestDays returns the rest days of a group within r
func (c *Calendar) RestDays(groupKey string, r model.DateRange) []time.Time {
	var days []time.Time
	for _, date := range r.Days() {
		if c.IsRestDay(date, groupKey) {
			days = append(days, date)
		}
	}
	return days
}

// Groups returns the number of groups with a pattern
func (c *Calendar) Groups() int {
	return len(c.rules)
}
