package ports

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

// ClientService defines use-case operations for the client directory.
type ClientService interface {
	Create(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Client, error)
	Archive(ctx context.Context, id string) (*domain.Client, error)
	Unarchive(ctx context.Context, id string) (*domain.Client, error)
	// RotatePIN replaces the client's PIN, invalidating the previous one
	// for all future public intake calls.
	RotatePIN(ctx context.Context, id string) (string, error)
	// GetPIN returns the current PIN. Operator-only; never reachable from
	// the public surface.
	GetPIN(ctx context.Context, id string) (string, error)
	// HardDelete removes the client and all of its requests. No undo.
	HardDelete(ctx context.Context, id string) error
	// ResolveByCode returns the public-safe projection of a non-archived
	// client. Unknown and archived codes are indistinguishable to callers.
	ResolveByCode(ctx context.Context, code string) (*domain.PublicClient, error)
}
