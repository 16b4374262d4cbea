package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/database"
)

type personnelRepository struct {
	db *database.DB
}

func NewPersonnelRepository(db *database.DB) personnel.Repository {
	return &personnelRepository{db: db}
}

// GetByPersonalID implements personnel.Repository.
func (p *personnelRepository) GetByPersonalID(ctx context.Context, personalID string) (personnel.Person, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT personal_id, full_name, is_commander, active, created_at, updated_at
		FROM personnel
		WHERE personal_id = $1
	`

	var person personnel.Person
	err := q.QueryRow(ctx, query, personalID).Scan(
		&person.PersonalID, &person.FullName, &person.IsCommander, &person.Active,
		&person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return personnel.Person{}, personnel.ErrPersonNotFound
		}
		return personnel.Person{}, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// List implements personnel.Repository.
func (p *personnelRepository) List(ctx context.Context, activeOnly bool) ([]personnel.Person, error) {
	query := `
		SELECT personal_id, full_name, is_commander, active, created_at, updated_at
		FROM personnel
		WHERE ($1::boolean = FALSE OR active = TRUE)
		ORDER BY full_name ASC, personal_id ASC
	`
	return p.query(ctx, query, activeOnly)
}

// ListCommanders implements personnel.Repository.
func (p *personnelRepository) ListCommanders(ctx context.Context) ([]personnel.Person, error) {
	query := `
		SELECT personal_id, full_name, is_commander, active, created_at, updated_at
		FROM personnel
		WHERE is_commander = TRUE AND active = TRUE
		ORDER BY full_name ASC
	`
	return p.query(ctx, query)
}

// Upsert implements personnel.Repository.
func (p *personnelRepository) Upsert(ctx context.Context, person personnel.Person) error {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO personnel (personal_id, full_name, is_commander, active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		ON CONFLICT (personal_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			is_commander = EXCLUDED.is_commander,
			active = TRUE,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, person.PersonalID, person.FullName, person.IsCommander); err != nil {
		return fmt.Errorf("failed to upsert person %s: %w", person.PersonalID, err)
	}
	return nil
}

// DeactivateMissing implements personnel.Repository.
func (p *personnelRepository) DeactivateMissing(ctx context.Context, keep []string) (int64, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE personnel
		SET active = FALSE, updated_at = NOW()
		WHERE active = TRUE AND NOT (personal_id = ANY($1::text[]))
	`

	tag, err := q.Exec(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate missing personnel: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *personnelRepository) query(ctx context.Context, query string, args ...interface{}) ([]personnel.Person, error) {
	q := GetQuerier(ctx, p.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}
	defer rows.Close()

	people := make([]personnel.Person, 0)
	for rows.Next() {
		var person personnel.Person
		if err := rows.Scan(
			&person.PersonalID, &person.FullName, &person.IsCommander, &person.Active,
			&person.CreatedAt, &person.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate personnel: %w", err)
	}
	return people, nil
}
