package personnel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"gopkg.in/yaml.v3"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type PersonnelServiceImpl struct {
	tx   Transactor
	repo personnel.Repository
}

func NewPersonnelService(tx Transactor, repo personnel.Repository) personnel.Service {
	return &PersonnelServiceImpl{
		tx:   tx,
		repo: repo,
	}
}

// Lookup implements personnel.Service.
func (s *PersonnelServiceImpl) Lookup(ctx context.Context, personalID string) (personnel.Person, error) {
	person, err := s.repo.GetByPersonalID(ctx, personalID)
	if err != nil {
		return personnel.Person{}, err
	}
	if !person.Active {
		return personnel.Person{}, personnel.ErrPersonNotFound
	}
	return person, nil
}

// List implements personnel.Service.
func (s *PersonnelServiceImpl) List(ctx context.Context, activeOnly bool) ([]personnel.Person, error) {
	return s.repo.List(ctx, activeOnly)
}

// ListCommanders implements personnel.Service.
func (s *PersonnelServiceImpl) ListCommanders(ctx context.Context) ([]personnel.CommanderResponse, error) {
	people, err := s.repo.ListCommanders(ctx)
	if err != nil {
		return nil, err
	}

	commanders := make([]personnel.CommanderResponse, 0, len(people))
	for _, p := range people {
		commanders = append(commanders, personnel.CommanderResponse{
			PersonalID: p.PersonalID,
			FullName:   p.FullName,
		})
	}
	return commanders, nil
}

// ImportRoster implements personnel.Service.
func (s *PersonnelServiceImpl) ImportRoster(ctx context.Context, r io.Reader) (personnel.ImportResult, error) {
	var roster personnel.Roster

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil {
		if errors.Is(err, io.EOF) {
			return personnel.ImportResult{}, personnel.ErrEmptyRoster
		}
		return personnel.ImportResult{}, fmt.Errorf("%w: %v", personnel.ErrInvalidRoster, err)
	}

	if err := roster.Validate(); err != nil {
		return personnel.ImportResult{}, err
	}

	var result personnel.ImportResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		keep := make([]string, 0, len(roster.Personnel))
		for _, entry := range roster.Personnel {
			if err := s.repo.Upsert(ctx, personnel.Person{
				PersonalID:  entry.PersonalID,
				FullName:    entry.FullName,
				IsCommander: entry.Commander,
				Active:      true,
			}); err != nil {
				return err
			}
			keep = append(keep, entry.PersonalID)
			result.Imported++
			if entry.Commander {
				result.Commanders++
			}
		}

		deactivated, err := s.repo.DeactivateMissing(ctx, keep)
		if err != nil {
			return err
		}
		result.Deactivated = deactivated
		return nil
	})
	if err != nil {
		return personnel.ImportResult{}, err
	}

	slog.Info("Roster imported",
		"imported", result.Imported,
		"commanders", result.Commanders,
		"deactivated", result.Deactivated,
	)
	return result, nil
}
