package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListStaff retrieves staff in the order they were synced
func (d *DB) ListStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT id, name, group_key, certified, learning, excluded
		FROM staff
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.Staff
	for rows.Next() {
		var s db.Staff
		var certified, learning, excluded string
		if err := rows.Scan(&s.ID, &s.Name, &s.GroupKey, &certified, &learning, &excluded); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		s.Certified = splitList(certified)
		s.Learning = splitList(learning)
		s.Excluded = splitList(excluded)
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// ReplaceStaff swaps the staff table contents in one transaction
func (d *DB) ReplaceStaff(ctx context.Context, staff []db.Staff) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM staff`); err != nil {
			return fmt.Errorf("failed to clear staff: %w", err)
		}

		for i, s := range staff {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO staff (id, name, group_key, certified, learning, excluded, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, s.ID, s.Name, s.GroupKey, joinList(s.Certified), joinList(s.Learning), joinList(s.Excluded), i)
			if err != nil {
				return fmt.Errorf("failed to insert staff %s: %w", s.ID, err)
			}
		}
		return nil
	})
}

// ListStations retrieves the station names in configured order
func (d *DB) ListStations(ctx context.Context) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT name FROM station ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stations: %w", err)
	}

	return stations, nil
}

// ReplaceStations swaps the station list in one transaction
func (d *DB) ReplaceStations(ctx context.Context, stations []string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM station`); err != nil {
			return fmt.Errorf("failed to clear stations: %w", err)
		}
		for i, name := range stations {
			if _, err := tx.ExecContext(ctx, `INSERT INTO station (name, position) VALUES (?, ?)`, name, i); err != nil {
				return fmt.Errorf("failed to insert station %s: %w", name, err)
			}
		}
		return nil
	})
}
