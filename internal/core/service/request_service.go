package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opsdesk/opsdesk/internal/api/metrics"
	"github.com/opsdesk/opsdesk/internal/core/domain"
	"github.com/opsdesk/opsdesk/internal/core/ports"
)

type RequestService struct {
	requests ports.RequestRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewRequestService(requests ports.RequestRepository, clients ports.ClientRepository, logger zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, clients: clients, logger: logger}
}

// Create inserts a new request in status "new". The client reference is
// checked at creation time; there is no live foreign-key enforcement after
// the fact.
func (s *RequestService) Create(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
	title := strings.TrimSpace(in.Title)
	if utf8.RuneCountInString(title) < 2 {
		return nil, fmt.Errorf("%w: title must be at least 2 characters", domain.ErrValidation)
	}

	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: unknown client", domain.ErrValidation)
		}
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.Request{
		ID:           uuid.NewString(),
		ClientID:     in.ClientID,
		Title:        title,
		Details:      in.Details,
		CustomerName: in.CustomerName,
		Tags:         in.Tags,
		DueDate:      in.DueDate,
		Status:       domain.StatusNew,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		s.logger.Error().Err(err).Str("client_id", in.ClientID).Msg("failed to create request")
		return nil, err
	}

	source := "operator"
	if in.CreatedBy == domain.CreatedByPublicLink {
		source = domain.CreatedByPublicLink
	}
	metrics.RequestsCreatedTotal.WithLabelValues(source).Inc()
	s.logger.Info().Str("request_id", req.ID).Str("client_id", in.ClientID).Str("created_by", in.CreatedBy).Msg("request created")
	return req, nil
}

// Edit applies a partial update. Absent fields are left untouched, explicit
// nulls clear optional fields, and updated_at is bumped on every successful
// edit regardless of which fields changed. Concurrent edits follow
// last-write-wins; the returned row is re-fetched after the write so the
// caller always observes the authoritative result.
func (s *RequestService) Edit(ctx context.Context, id string, in ports.UpdateRequestInput) (*domain.Request, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status.Set {
		if in.Status.Value == nil || !domain.Status(*in.Status.Value).Valid() {
			return nil, fmt.Errorf("%w: status must be one of new, doing, waiting, done", domain.ErrValidation)
		}
		req.Status = domain.Status(*in.Status.Value)
	}
	applyString(&req.Title, in.Title)
	applyString(&req.Details, in.Details)
	applyString(&req.CustomerName, in.CustomerName)
	applyString(&req.Tags, in.Tags)
	if in.DueDate.Set {
		req.DueDate = in.DueDate.Value
	}
	req.UpdatedAt = time.Now().UTC()

	if err := s.requests.Update(ctx, req); err != nil {
		s.logger.Error().Err(err).Str("request_id", id).Msg("failed to update request")
		return nil, err
	}

	return s.requests.FindByID(ctx, id)
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("request_id", id).Msg("request deleted")
	return nil
}

// List returns a client's requests ordered by updated_at descending, with
// the derived overdue and waiting-stale flags computed against the current
// time. An invalid status filter value falls back to unfiltered.
func (s *RequestService) List(ctx context.Context, in ports.ListRequestsInput) ([]ports.RequestView, error) {
	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id is required", domain.ErrValidation)
	}

	filter := ports.ListRequestsFilter{
		ClientID: in.ClientID,
		Query:    strings.TrimSpace(in.Query),
	}
	if in.Status != "" && domain.Status(in.Status).Valid() {
		filter.Status = in.Status
	}

	reqs, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]ports.RequestView, len(reqs))
	for i, r := range reqs {
		views[i] = ports.RequestView{
			Request:      *r,
			Overdue:      r.Overdue(now),
			WaitingStale: r.WaitingStale(now),
		}
	}
	return views, nil
}

// applyString applies a string patch: absent leaves the field alone, an
// explicit null clears it.
func applyString(dst *string, p ports.Patch[string]) {
	if !p.Set {
		return
	}
	if p.Value == nil {
		*dst = ""
		return
	}
	*dst = *p.Value
}
