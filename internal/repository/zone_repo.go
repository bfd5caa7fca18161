package repository

import (
	"context"
	"database/sql"
	"time"

	"irrigator/internal/models"
)

type ZoneSQLite struct {
	db *sql.DB
}

func NewZoneSQLite(db *sql.DB) *ZoneSQLite {
	return &ZoneSQLite{db: db}
}

const (
	insertOrUpdateZoneSQL = `
		INSERT INTO zone_state (id, is_on, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_on=excluded.is_on,
			updated_at=excluded.updated_at
	`

	selectZonesSQL = `
		SELECT id, is_on, updated_at
		FROM zone_state ORDER BY id ASC
	`
)

// Save updates or inserts the row for zone z.ID.
func (r *ZoneSQLite) Save(ctx context.Context, z models.ZoneState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	ts := z.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}
	_, err := r.db.ExecContext(ctx, insertOrUpdateZoneSQL, z.ID, z.On, ts)
	return err
}

// List returns every persisted zone ordered by id.
func (r *ZoneSQLite) List(ctx context.Context) ([]models.ZoneState, error) {
	rows, err := r.db.QueryContext(ctx, selectZonesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ZoneState
	for rows.Next() {
		var z models.ZoneState
		if err := rows.Scan(&z.ID, &z.On, &z.UpdatedAt); err != nil {
			return nil, err
		}
		z.UpdatedAt = z.UpdatedAt.UTC()
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
