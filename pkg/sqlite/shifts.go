package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

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
		conditions = append(conditions, "shift_date >= ?")
		args = append(args, from)
	}
	if to != "" {
		conditions = append(conditions, "shift_date <= ?")
		args = append(args, to)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY shift_date, staff_id"

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		var roles string
		if err := rows.Scan(&s.StaffID, &s.ShiftDate, &s.Station, &s.StationAutoGenerated, &roles, &s.RoleAutoGenerated); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.Roles = splitList(roles)
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

	return d.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO shift (staff_id, shift_date, station, station_auto_generated, roles, role_auto_generated)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (staff_id, shift_date) DO UPDATE SET
				station = excluded.station,
				station_auto_generated = excluded.station_auto_generated,
				roles = excluded.roles,
				role_auto_generated = excluded.role_auto_generated
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare shift upsert: %w", err)
		}
		defer stmt.Close()

		for _, s := range shifts {
			_, err := stmt.ExecContext(ctx, s.StaffID, s.ShiftDate, s.Station, s.StationAutoGenerated, joinList(s.Roles), s.RoleAutoGenerated)
			if err != nil {
				return fmt.Errorf("failed to upsert shift %s/%s: %w", s.StaffID, s.ShiftDate, err)
			}
		}
		return nil
	})
}
