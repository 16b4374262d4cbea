package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/database"
)

type locationPingRepository struct {
	db *database.DB
}

func NewLocationPingRepository(db *database.DB) location.Repository {
	return &locationPingRepository{db: db}
}

// Upsert implements location.Repository.
func (l *locationPingRepository) Upsert(ctx context.Context, ping location.Ping) (location.Ping, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO location_pings (personal_id, reporter_name, current_location, on_shift, reported_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (personal_id) DO UPDATE SET
			reporter_name = EXCLUDED.reporter_name,
			current_location = EXCLUDED.current_location,
			on_shift = EXCLUDED.on_shift,
			reported_at = EXCLUDED.reported_at
		RETURNING personal_id, reporter_name, current_location, on_shift, reported_at
	`

	var saved location.Ping
	err := q.QueryRow(ctx, query,
		ping.PersonalID,
		ping.ReporterName,
		ping.CurrentLocation,
		ping.OnShift,
		ping.ReportedAt,
	).Scan(&saved.PersonalID, &saved.ReporterName, &saved.CurrentLocation, &saved.OnShift, &saved.ReportedAt)
	if err != nil {
		return location.Ping{}, fmt.Errorf("failed to upsert location ping: %w", err)
	}
	return saved, nil
}

// GetByPersonalID implements location.Repository.
func (l *locationPingRepository) GetByPersonalID(ctx context.Context, personalID string) (location.Ping, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT personal_id, reporter_name, current_location, on_shift, reported_at
		FROM location_pings
		WHERE personal_id = $1
	`

	var ping location.Ping
	err := q.QueryRow(ctx, query, personalID).Scan(
		&ping.PersonalID, &ping.ReporterName, &ping.CurrentLocation, &ping.OnShift, &ping.ReportedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Ping{}, location.ErrPingNotFound
		}
		return location.Ping{}, fmt.Errorf("failed to get location ping: %w", err)
	}
	return ping, nil
}

// List implements location.Repository.
func (l *locationPingRepository) List(ctx context.Context) ([]location.Ping, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT personal_id, reporter_name, current_location, on_shift, reported_at
		FROM location_pings
		ORDER BY reported_at DESC, personal_id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list location pings: %w", err)
	}
	defer rows.Close()

	pings := make([]location.Ping, 0)
	for rows.Next() {
		var ping location.Ping
		if err := rows.Scan(&ping.PersonalID, &ping.ReporterName, &ping.CurrentLocation, &ping.OnShift, &ping.ReportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location ping: %w", err)
		}
		pings = append(pings, ping)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location pings: %w", err)
	}
	return pings, nil
}

// DeleteAll implements location.Repository.
func (l *locationPingRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM location_pings`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete location pings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOlderThan implements location.Repository.
func (l *locationPingRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM location_pings WHERE reported_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune location pings: %w", err)
	}
	return tag.RowsAffected(), nil
}
