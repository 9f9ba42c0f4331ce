package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsdesk/opsdesk/internal/api/metrics"
	"github.com/opsdesk/opsdesk/internal/core/domain"
	"github.com/opsdesk/opsdesk/internal/core/ports"
)

// IntakeService implements the public, unauthenticated submission path:
// resolve a submission code, verify the PIN, and delegate request creation
// with the public-link provenance sentinel.
type IntakeService struct {
	clients  ports.ClientRepository
	requests ports.RequestService
	limiter  ports.RateLimiter
	logger   zerolog.Logger
}

func NewIntakeService(
	clients ports.ClientRepository,
	requests ports.RequestService,
	limiter ports.RateLimiter,
	logger zerolog.Logger,
) *IntakeService {
	return &IntakeService{
		clients:  clients,
		requests: requests,
		limiter:  limiter,
		logger:   logger,
	}
}

// Resolve looks up a client by submission code for the public form. The
// response never carries the PIN, and archived clients are reported as
// not found.
func (s *IntakeService) Resolve(ctx context.Context, code string) (*domain.PublicClient, error) {
	client, err := s.clients.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if client.Archived {
		return nil, domain.ErrClientNotFound
	}
	p := client.Public()
	return &p, nil
}

// Submit creates a request through the public intake gate.
//
// The checks run in a fixed order: rate limit, code resolution (archived
// indistinguishable from unknown), PIN presence, PIN match, then delegation
// to the request service, which owns title validation. Public submissions
// never carry tags.
func (s *IntakeService) Submit(ctx context.Context, in ports.PublicSubmitInput) (*domain.Request, error) {
	if !s.limiter.Allow(in.CallerAddr, time.Now()) {
		metrics.PublicSubmissionsTotal.WithLabelValues("rate_limited").Inc()
		s.logger.Warn().Str("caller", in.CallerAddr).Msg("public intake rate limited")
		return nil, domain.ErrRateLimited
	}

	client, err := s.clients.FindByCode(ctx, in.SubmissionCode)
	if err != nil {
		metrics.PublicSubmissionsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if client.Archived {
		metrics.PublicSubmissionsTotal.WithLabelValues("not_found").Inc()
		return nil, domain.ErrClientNotFound
	}

	// Every client gets a PIN at creation; an empty one here means the
	// record predates the bootstrap backfill. Refuse rather than let the
	// gate swing open.
	if client.PIN == "" {
		metrics.PublicSubmissionsTotal.WithLabelValues("bad_pin").Inc()
		return nil, fmt.Errorf("%w: PIN required", domain.ErrForbidden)
	}
	// Plain string equality, not constant-time. The PIN is a low-value
	// gate, not a cryptographic secret.
	if client.PIN != in.PIN {
		metrics.PublicSubmissionsTotal.WithLabelValues("bad_pin").Inc()
		s.logger.Info().Str("client_id", client.ID).Str("caller", in.CallerAddr).Msg("public intake PIN mismatch")
		return nil, fmt.Errorf("%w: invalid PIN", domain.ErrForbidden)
	}

	req, err := s.requests.Create(ctx, ports.CreateRequestInput{
		ClientID:     client.ID,
		Title:        in.Title,
		Details:      in.Details,
		CustomerName: in.CustomerName,
		DueDate:      in.DueDate,
		CreatedBy:    domain.CreatedByPublicLink,
	})
	if err != nil {
		return nil, err
	}

	metrics.PublicSubmissionsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("request_id", req.ID).Str("client_id", client.ID).Msg("public request submitted")
	return req, nil
}
