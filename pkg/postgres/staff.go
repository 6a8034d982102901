package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListStaff retrieves staff in the order they were synced
func (d *DB) ListStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
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
		if err := rows.Scan(&s.ID, &s.Name, &s.GroupKey, &s.Certified, &s.Learning, &s.Excluded); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// ReplaceStaff swaps the staff table contents in one transaction
func (d *DB) ReplaceStaff(ctx context.Context, staff []db.Staff) error {
	return pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM staff`); err != nil {
			return fmt.Errorf("failed to clear staff: %w", err)
		}

		for i, s := range staff {
			_, err := tx.Exec(ctx, `
				INSERT INTO staff (id, name, group_key, certified, learning, excluded, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, s.ID, s.Name, s.GroupKey, nonNil(s.Certified), nonNil(s.Learning), nonNil(s.Excluded), i)
			if err != nil {
				return fmt.Errorf("failed to insert staff %s: %w", s.ID, err)
			}
		}
		return nil
	})
}

// ListStations retrieves the station names in configured order
func (d *DB) ListStations(ctx context.Context) ([]string, error) {
	rows, err := d.pool.Query(ctx, `SELECT name FROM station ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}

	stations, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan stations: %w", err)
	}
	return stations, nil
}

// ReplaceStations swaps the station list in one transaction
func (d *DB) ReplaceStations(ctx context.Context, stations []string) error {
	return pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM station`); err != nil {
			return fmt.Errorf("failed to clear stations: %w", err)
		}
		for i, name := range stations {
			if _, err := tx.Exec(ctx, `INSERT INTO station (name, position) VALUES ($1, $2)`, name, i); err != nil {
				return fmt.Errorf("failed to insert station %s: %w", name, err)
			}
		}
		return nil
	})
}
