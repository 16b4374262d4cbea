package personnel

import (
	"context"
	"io"
)

type Service interface {
	// Lookup resolves an active person by personal id.
	Lookup(ctx context.Context, personalID string) (Person, error)

	List(ctx context.Context, activeOnly bool) ([]Person, error)
	ListCommanders(ctx context.Context) ([]CommanderResponse, error)

	// ImportRoster replaces the directory with the YAML roster read from r.
	ImportRoster(ctx context.Context, r io.Reader) (ImportResult, error)
}
