package ports

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

type AuthService interface {
	// Register creates the operator account. Refused once any user exists:
	// this is a single-operator system.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
