package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListShifts retrieves shifts between from and to inclusive; empty bounds are open
func (d *DB) ListShifts(ctx context.Context, from, to string) ([]db.Shift, error) {
	query := `
		SELECT staff_id, shift_date, station, station_auto_generated, roles, role_auto_generated
		FROM shift`

	var conditions []string
	var args []any
	if from != "" {
		args = append(args, from)
		conditions = append(conditions, fmt.Sprintf("shift_date >= $%d", len(args)))
	}
	if to != "" {
		args = append(args, to)
		conditions = append(conditions, fmt.Sprintf("shift_date <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY shift_date, staff_id"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		var date time.Time
		if err := rows.Scan(&s.StaffID, &date, &s.Station, &s.StationAutoGenerated, &s.Roles, &s.RoleAutoGenerated); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.ShiftDate = date.Format(dateLayout)
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// UpsertShifts writes the batch in one transaction, replacing rows with the same key
func (d *DB) UpsertShifts(ctx context.Context, shifts []db.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range shifts {
		batch.Queue(`
			INSERT INTO shift (staff_id, shift_date, station, station_auto_generated, roles, role_auto_generated)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (staff_id, shift_date) DO UPDATE SET
				station = EXCLUDED.station,
				station_auto_generated = EXCLUDED.station_auto_generated,
				roles = EXCLUDED.roles,
				role_auto_generated = EXCLUDED.role_auto_generated
		`, s.StaffID, s.ShiftDate, s.Station, s.StationAutoGenerated, nonNil(s.Roles), s.RoleAutoGenerated)
	}

	err := pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert shifts: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
