package ports

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// FindByCode retrieves a client by submission code regardless of its
	// archived flag; callers decide whether archived clients are visible.
	FindByCode(ctx context.Context, code string) (*domain.Client, error)
	// List returns clients ordered by creation time descending. Archived
	// clients are excluded unless includeArchived is set.
	List(ctx context.Context, includeArchived bool) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	// DeleteCascade removes all requests owned by the client and then the
	// client itself as a single unit: if the request deletion fails, the
	// client must remain.
	DeleteCascade(ctx context.Context, id string) error
	CodeExists(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
