package ports

import (
	"context"
	"time"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

// Patch wraps a field of a partial update. Set reports whether the field
// appeared in the payload at all; a Set field with a nil Value clears it.
// Absent fields (Set == false) leave the stored value unchanged. The
// distinction between absent and explicit null is load-bearing.
type Patch[T any] struct {
	Set   bool
	Value *T
}

// PatchOf returns a set Patch carrying v. Test and caller convenience.
func PatchOf[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: &v}
}

// PatchNull returns a set Patch with a nil value, i.e. "clear this field".
func PatchNull[T any]() Patch[T] {
	return Patch[T]{Set: true}
}

// CreateRequestInput carries all data needed to create a request.
type CreateRequestInput struct {
	ClientID     string
	Title        string
	Details      string
	CustomerName string
	Tags         string
	DueDate      *time.Time
	CreatedBy    string
}

// UpdateRequestInput is a partial edit. Every field follows Patch semantics.
type UpdateRequestInput struct {
	Title        Patch[string]
	Details      Patch[string]
	CustomerName Patch[string]
	Tags         Patch[string]
	DueDate      Patch[time.Time]
	Status       Patch[string]
}

// ListRequestsInput carries the parameters for the list endpoint.
type ListRequestsInput struct {
	ClientID string
	Status   string
	Query    string
}

// RequestView is a request plus its derived flags, computed at read time.
type RequestView struct {
	domain.Request
	Overdue      bool `json:"overdue"`
	WaitingStale bool `json:"waiting_stale"`
}

// RequestService defines use-case operations for the request lifecycle.
type RequestService interface {
	Create(ctx context.Context, in CreateRequestInput) (*domain.Request, error)
	// Edit applies a partial update and returns the authoritative
	// post-write row, never an echo of the caller's input.
	Edit(ctx context.Context, id string, in UpdateRequestInput) (*domain.Request, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, in ListRequestsInput) ([]RequestView, error)
}
