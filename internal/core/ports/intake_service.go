package ports

import (
	"context"
	"time"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

// PublicSubmitInput carries a public intake submission. CallerAddr is the
// network address the rate limit window is keyed by.
type PublicSubmitInput struct {
	SubmissionCode string
	PIN            string
	Title          string
	Details        string
	CustomerName   string
	DueDate        *time.Time
	CallerAddr     string
}

// IntakeService is the public, unauthenticated surface: resolving a
// submission code and submitting a PIN-gated request through it.
type IntakeService interface {
	Resolve(ctx context.Context, code string) (*domain.PublicClient, error)
	Submit(ctx context.Context, in PublicSubmitInput) (*domain.Request, error)
}

// RateLimiter bounds how often a single caller may submit. Allow records
// one attempt for key and reports whether it is still within the window
// budget. Implementations must be safe for concurrent use.
type RateLimiter interface {
	Allow(key string, now time.Time) bool
}
