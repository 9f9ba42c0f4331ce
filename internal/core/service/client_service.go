package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opsdesk/opsdesk/internal/api/metrics"
	"github.com/opsdesk/opsdesk/internal/core/domain"
	"github.com/opsdesk/opsdesk/internal/core/ports"
)

const (
	codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	codeLength   = 6
	codeAttempts = 5
)

type ClientService struct {
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

// Create validates the name, generates a submission code and PIN, and
// persists the new client.
func (s *ClientService) Create(ctx context.Context, name string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", domain.ErrValidation)
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	client := &domain.Client{
		ID:             uuid.NewString(),
		Name:           name,
		SubmissionCode: code,
		PIN:            generatePIN(),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.clients.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	metrics.ClientsCreatedTotal.Inc()
	s.logger.Info().Str("client_id", client.ID).Str("code", client.SubmissionCode).Msg("client created")
	return client, nil
}

// List returns clients ordered by creation time descending, excluding
// archived ones unless includeArchived is set.
func (s *ClientService) List(ctx context.Context, includeArchived bool) ([]*domain.Client, error) {
	return s.clients.List(ctx, includeArchived)
}

func (s *ClientService) Archive(ctx context.Context, id string) (*domain.Client, error) {
	return s.setArchived(ctx, id, true)
}

func (s *ClientService) Unarchive(ctx context.Context, id string) (*domain.Client, error) {
	return s.setArchived(ctx, id, false)
}

func (s *ClientService) setArchived(ctx context.Context, id string, archived bool) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Archived = archived
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	s.logger.Info().Str("client_id", id).Bool("archived", archived).Msg("client archive flag changed")
	return client, nil
}

// RotatePIN replaces the client's PIN. The previous PIN stops working for
// public intake immediately.
func (s *ClientService) RotatePIN(ctx context.Context, id string) (string, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	client.PIN = generatePIN()
	if err := s.clients.Update(ctx, client); err != nil {
		return "", err
	}
	s.logger.Info().Str("client_id", id).Msg("client PIN rotated")
	return client.PIN, nil
}

func (s *ClientService) GetPIN(ctx context.Context, id string) (string, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return client.PIN, nil
}

// HardDelete removes the client's requests and then the client itself as a
// single unit.
func (s *ClientService) HardDelete(ctx context.Context, id string) error {
	if err := s.clients.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Msg("client hard-deleted with requests")
	return nil
}

// ResolveByCode returns the public projection of a non-archived client.
// Archived and unknown codes both report not-found so the public path
// never reveals that an archived client exists.
func (s *ClientService) ResolveByCode(ctx context.Context, code string) (*domain.PublicClient, error) {
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

// uniqueCode generates a submission code, retrying on collision up to
// codeAttempts times. If every attempt collides the last candidate is used
// anyway: at 36^6 codes the residual collision odds are negligible.
func (s *ClientService) uniqueCode(ctx context.Context) (string, error) {
	var code string
	for i := 0; i < codeAttempts; i++ {
		code = generateCode()
		exists, err := s.clients.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	s.logger.Warn().Str("code", code).Msg("submission code still colliding after retries, proceeding")
	return code, nil
}

// generateCode returns a short URL-safe submission code. Codes are not
// guessable by sequence but are not cryptographically secret; math/rand is
// deliberate here.
func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// generatePIN returns a uniform random 6-digit PIN. Like submission codes,
// PINs are a low-friction gate, not an authentication secret.
func generatePIN() string {
	return fmt.Sprintf("%06d", rand.Intn(1_000_000))
}
