package personnel

import "context"

type Repository interface {
	GetByPersonalID(ctx context.Context, personalID string) (Person, error)
	List(ctx context.Context, activeOnly bool) ([]Person, error)
	ListCommanders(ctx context.Context) ([]Person, error)

	// Upsert inserts the person or replaces name and commander flag, reactivating them.
	Upsert(ctx context.Context, person Person) error

	// DeactivateMissing marks every active person whose id is not in keep as inactive.
	DeactivateMissing(ctx context.Context, keep []string) (int64, error)
}
