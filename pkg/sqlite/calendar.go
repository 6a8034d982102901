package sqlite

import (
	"context"
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListEvents retrieves all calendar events ordered by date
func (d *DB) ListEvents(ctx context.Context) ([]db.CalendarEvent, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT id, event_date, event_type, note
		FROM calendar_event
		ORDER BY event_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var events []db.CalendarEvent
	for rows.Next() {
		var e db.CalendarEvent
		if err := rows.Scan(&e.ID, &e.EventDate, &e.EventType, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar events: %w", err)
	}

	return events, nil
}

// InsertEvent inserts a new calendar event
func (d *DB) InsertEvent(ctx context.Context, event *db.CalendarEvent) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO calendar_event (id, event_date, event_type, note)
		VALUES (?, ?, ?, ?)
	`, event.ID, event.EventDate, event.EventType, event.Note)
	if err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}

// ListCycles retrieves all scheduling cycles ordered by start date
func (d *DB) ListCycles(ctx context.Context) ([]db.Cycle, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT id, start_date, end_date, confirmed
		FROM scheduling_cycle
		ORDER BY start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []db.Cycle
	for rows.Next() {
		var c db.Cycle
		if err := rows.Scan(&c.ID, &c.StartDate, &c.EndDate, &c.Confirmed); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycles: %w", err)
	}

	return cycles, nil
}

// InsertCycle inserts a new scheduling cycle
func (d *DB) InsertCycle(ctx context.Context, cycle *db.Cycle) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO scheduling_cycle (id, start_date, end_date, confirmed)
		VALUES (?, ?, ?, ?)
	`, cycle.ID, cycle.StartDate, cycle.EndDate, cycle.Confirmed)
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}
	return nil
}

// SetCycleConfirmed sets the confirmed flag for a cycle
func (d *DB) SetCycleConfirmed(ctx context.Context, id string, confirmed bool) error {
	result, err := d.sql.ExecContext(ctx, `
		UPDATE scheduling_cycle SET confirmed = ? WHERE id = ?
	`, confirmed, id)
	if err != nil {
		return fmt.Errorf("failed to set cycle confirmed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cycle %s: %w", id, db.ErrNotFound)
	}
	return nil
}
