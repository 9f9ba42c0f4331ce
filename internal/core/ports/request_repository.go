package ports

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

// ListRequestsFilter carries the query parameters for listing requests.
// The service layer validates ClientID and drops invalid Status values
// before the filter reaches the repository.
type ListRequestsFilter struct {
	ClientID string
	Status   string // optional: one of the four lifecycle states
	Query    string // optional: case-insensitive substring on title, customer_name, tags
}

// RequestRepository defines persistence operations for requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) error
	FindByID(ctx context.Context, id string) (*domain.Request, error)
	Update(ctx context.Context, r *domain.Request) error
	Delete(ctx context.Context, id string) error
	// List returns requests matching filter, ordered by updated_at descending.
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.Request, error)
	// ListByClient returns every request owned by the client, ordered by
	// created_at ascending. Used by the weekly report scan.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Request, error)
}
