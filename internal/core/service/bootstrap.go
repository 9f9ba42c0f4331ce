package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opsdesk/opsdesk/internal/core/ports"
)

const defaultClientName = "First Client"

// Bootstrap runs the process-wide startup policy once: seed the operator
// account, guarantee at least one client exists, and backfill submission
// codes on clients created before codes existed.
type Bootstrap struct {
	users   ports.AuthRepository
	auth    ports.AuthService
	clients *ClientService
	logger  zerolog.Logger
}

func NewBootstrap(users ports.AuthRepository, auth ports.AuthService, clients *ClientService, logger zerolog.Logger) *Bootstrap {
	return &Bootstrap{users: users, auth: auth, clients: clients, logger: logger}
}

// Run executes all bootstrap steps. It is idempotent: every step checks
// current state before acting.
func (b *Bootstrap) Run(ctx context.Context, adminUsername, adminPassword string) error {
	if err := b.seedOperator(ctx, adminUsername, adminPassword); err != nil {
		return fmt.Errorf("bootstrap: seed operator: %w", err)
	}
	if err := b.ensureDefaultClient(ctx); err != nil {
		return fmt.Errorf("bootstrap: default client: %w", err)
	}
	if err := b.backfillCodes(ctx); err != nil {
		return fmt.Errorf("bootstrap: backfill codes: %w", err)
	}
	return nil
}

func (b *Bootstrap) seedOperator(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	n, err := b.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := b.auth.Register(ctx, username, password); err != nil {
		return err
	}
	b.logger.Info().Str("username", username).Msg("operator account seeded")
	return nil
}

func (b *Bootstrap) ensureDefaultClient(ctx context.Context) error {
	n, err := b.clients.clients.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	client, err := b.clients.Create(ctx, defaultClientName)
	if err != nil {
		return err
	}
	b.logger.Info().Str("client_id", client.ID).Msg("default client created")
	return nil
}

// backfillCodes assigns a submission code to any client missing one, using
// the same bounded-retry uniqueness policy as client creation.
func (b *Bootstrap) backfillCodes(ctx context.Context) error {
	all, err := b.clients.clients.List(ctx, true)
	if err != nil {
		return err
	}
	for _, c := range all {
		if c.SubmissionCode != "" {
			continue
		}
		code, err := b.clients.uniqueCode(ctx)
		if err != nil {
			return err
		}
		c.SubmissionCode = code
		if err := b.clients.clients.Update(ctx, c); err != nil {
			return err
		}
		b.logger.Info().Str("client_id", c.ID).Str("code", code).Msg("submission code backfilled")
	}
	return nil
}
