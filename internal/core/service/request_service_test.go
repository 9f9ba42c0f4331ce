package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk/internal/core/domain"
	"github.com/opsdesk/opsdesk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub request repository
// ---------------------------------------------------------------------------

type stubRequestRepo struct {
	reqs     map[string]*domain.Request
	storeErr error
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{reqs: make(map[string]*domain.Request)}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.Request) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	clone := *req
	r.reqs[req.ID] = &clone
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.Request, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	req, ok := r.reqs[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) Update(_ context.Context, req *domain.Request) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	if _, ok := r.reqs[req.ID]; !ok {
		return domain.ErrRequestNotFound
	}
	clone := *req
	r.reqs[req.ID] = &clone
	return nil
}

func (r *stubRequestRepo) Delete(_ context.Context, id string) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	if _, ok := r.reqs[id]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(r.reqs, id)
	return nil
}

// List mirrors the filters and ordering of the real Mongo repository.
func (r *stubRequestRepo) List(_ context.Context, f ports.ListRequestsFilter) ([]*domain.Request, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	var out []*domain.Request
	for _, req := range r.reqs {
		if req.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && string(req.Status) != f.Status {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(req.Title), q) &&
				!strings.Contains(strings.ToLower(req.CustomerName), q) &&
				!strings.Contains(strings.ToLower(req.Tags), q) {
				continue
			}
		}
		clone := *req
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *stubRequestRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Request, error) {
	if r.storeErr != nil {
		return nil, r.storeErr
	}
	var out []*domain.Request
	for _, req := range r.reqs {
		if req.ClientID == clientID {
			clone := *req
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedRequest(repo *stubRequestRepo, id, clientID, title string, status domain.Status, at time.Time) *domain.Request {
	req := &domain.Request{
		ID:        id,
		ClientID:  clientID,
		Title:     title,
		Status:    status,
		CreatedBy: "operator",
		CreatedAt: at,
		UpdatedAt: at,
	}
	repo.reqs[id] = req
	return req
}

func newRequestSvc(reqs *stubRequestRepo, clients *stubClientRepo) *RequestService {
	return NewRequestService(reqs, clients, discardLogger)
}

func clientFixture() *stubClientRepo {
	repo := newStubClientRepo()
	seedClient(repo, "c1", "Acme", "abc123", "111111", false)
	return repo
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestRequestService_Create_Success(t *testing.T) {
	reqs := newStubRequestRepo()
	svc := newRequestSvc(reqs, clientFixture())

	req, err := svc.Create(context.Background(), ports.CreateRequestInput{
		ClientID:  "c1",
		Title:     "  Fix invoice layout  ",
		Details:   "totals misaligned",
		Tags:      "billing,urgent",
		CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Title != "Fix invoice layout" {
		t.Errorf("expected trimmed title, got %q", req.Title)
	}
	if req.Status != domain.StatusNew {
		t.Errorf("expected initial status %q, got %q", domain.StatusNew, req.Status)
	}
	if req.CreatedAt.IsZero() || !req.UpdatedAt.Equal(req.CreatedAt) {
		t.Error("expected createdAt == updatedAt on creation")
	}
	if _, ok := reqs.reqs[req.ID]; !ok {
		t.Error("request was not persisted")
	}
}

func TestRequestService_Create_UnknownClient(t *testing.T) {
	svc := newRequestSvc(newStubRequestRepo(), clientFixture())

	_, err := svc.Create(context.Background(), ports.CreateRequestInput{
		ClientID: "ghost",
		Title:    "Valid title",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown client, got %v", err)
	}
}

func TestRequestService_Create_ShortTitle(t *testing.T) {
	svc := newRequestSvc(newStubRequestRepo(), clientFixture())

	for _, title := range []string{"", " ", "x", " x "} {
		_, err := svc.Create(context.Background(), ports.CreateRequestInput{ClientID: "c1", Title: title})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("title %q: expected ErrValidation, got %v", title, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Edit: status closure
// ---------------------------------------------------------------------------

func TestRequestService_Edit_AnyStatusToAnyStatus(t *testing.T) {
	all := []domain.Status{domain.StatusNew, domain.StatusDoing, domain.StatusWaiting, domain.StatusDone}

	for _, from := range all {
		for _, to := range all {
			reqs := newStubRequestRepo()
			seedRequest(reqs, "r1", "c1", "Req", from, time.Now().Add(-time.Hour))
			svc := newRequestSvc(reqs, clientFixture())

			got, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
				Status: ports.PatchOf(string(to)),
			})
			if err != nil {
				t.Fatalf("%s -> %s: unexpected error: %v", from, to, err)
			}
			if got.Status != to {
				t.Errorf("%s -> %s: stored status %q", from, to, got.Status)
			}
		}
	}
}

func TestRequestService_Edit_InvalidStatusRejected(t *testing.T) {
	reqs := newStubRequestRepo()
	seedRequest(reqs, "r1", "c1", "Req", domain.StatusDoing, time.Now().Add(-time.Hour))
	svc := newRequestSvc(reqs, clientFixture())

	for _, bad := range []string{"cancelled", "DONE", "", "in_progress"} {
		_, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
			Status: ports.PatchOf(bad),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("status %q: expected ErrValidation, got %v", bad, err)
		}
	}

	// Null status is present-but-invalid, not "no change".
	_, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
		Status: ports.PatchNull[string](),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("null status: expected ErrValidation, got %v", err)
	}

	if reqs.reqs["r1"].Status != domain.StatusDoing {
		t.Errorf("stored status must be unchanged after rejected edits, got %q", reqs.reqs["r1"].Status)
	}
}

// ---------------------------------------------------------------------------
// Edit: partial semantics
// ---------------------------------------------------------------------------

func TestRequestService_Edit_StatusOnlyLeavesFieldsAndBumpsUpdatedAt(t *testing.T) {
	reqs := newStubRequestRepo()
	seeded := seedRequest(reqs, "r1", "c1", "Original title", domain.StatusNew, time.Now().Add(-time.Hour))
	seeded.Details = "keep me"
	seeded.Tags = "a,b"
	svc := newRequestSvc(reqs, clientFixture())

	got, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
		Status: ports.PatchOf(string(domain.StatusDone)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title != "Original title" || got.Details != "keep me" || got.Tags != "a,b" {
		t.Errorf("absent fields must be untouched: %+v", got)
	}
	if !got.UpdatedAt.After(seeded.UpdatedAt) {
		t.Error("updatedAt must advance on every successful edit")
	}
}

func TestRequestService_Edit_NullClearsOptionalField(t *testing.T) {
	reqs := newStubRequestRepo()
	seeded := seedRequest(reqs, "r1", "c1", "Title", domain.StatusNew, time.Now().Add(-time.Hour))
	seeded.Tags = "a,b"
	due := time.Now().Add(48 * time.Hour)
	seeded.DueDate = &due
	svc := newRequestSvc(reqs, clientFixture())

	got, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
		Tags: ports.PatchNull[string](),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tags != "" {
		t.Errorf("null tags must clear the field, got %q", got.Tags)
	}
	if got.Title != "Title" || got.DueDate == nil {
		t.Error("other fields must be untouched by a tags-only edit")
	}

	got, err = svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
		DueDate: ports.PatchNull[time.Time](),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DueDate != nil {
		t.Error("null due date must clear the field")
	}
}

func TestRequestService_Edit_NonStatusEditBumpsUpdatedAt(t *testing.T) {
	reqs := newStubRequestRepo()
	seeded := seedRequest(reqs, "r1", "c1", "Title", domain.StatusWaiting, time.Now().Add(-time.Hour))
	before := seeded.UpdatedAt
	svc := newRequestSvc(reqs, clientFixture())

	got, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
		Details: ports.PatchOf("new details"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.UpdatedAt.After(before) {
		t.Error("updatedAt must advance even when status did not change")
	}
	if got.Status != domain.StatusWaiting {
		t.Errorf("status must be unchanged, got %q", got.Status)
	}
}

func TestRequestService_Edit_ReturnsStoredRow(t *testing.T) {
	reqs := newStubRequestRepo()
	seedRequest(reqs, "r1", "c1", "Title", domain.StatusNew, time.Now().Add(-time.Hour))
	svc := newRequestSvc(reqs, clientFixture())

	got, err := svc.Edit(context.Background(), "r1", ports.UpdateRequestInput{
		Title: ports.PatchOf("Renamed"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := reqs.reqs["r1"]
	if got.Title != stored.Title || !got.UpdatedAt.Equal(stored.UpdatedAt) {
		t.Error("edit must return the authoritative post-write row")
	}
}

func TestRequestService_Edit_UnknownID(t *testing.T) {
	svc := newRequestSvc(newStubRequestRepo(), clientFixture())

	_, err := svc.Edit(context.Background(), "ghost", ports.UpdateRequestInput{})
	if !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestRequestService_Delete(t *testing.T) {
	reqs := newStubRequestRepo()
	seedRequest(reqs, "r1", "c1", "Req", domain.StatusNew, time.Now())
	svc := newRequestSvc(reqs, clientFixture())

	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reqs.reqs["r1"]; ok {
		t.Error("request must be removed")
	}

	if err := svc.Delete(context.Background(), "r1"); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound on second delete, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestRequestService_List_RequiresClientID(t *testing.T) {
	svc := newRequestSvc(newStubRequestRepo(), clientFixture())

	_, err := svc.List(context.Background(), ports.ListRequestsInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation without client_id, got %v", err)
	}
}

func TestRequestService_List_StatusFilter(t *testing.T) {
	reqs := newStubRequestRepo()
	seedRequest(reqs, "r1", "c1", "One", domain.StatusNew, time.Now().Add(-2*time.Minute))
	seedRequest(reqs, "r2", "c1", "Two", domain.StatusDone, time.Now().Add(-time.Minute))
	svc := newRequestSvc(reqs, clientFixture())

	views, err := svc.List(context.Background(), ports.ListRequestsInput{ClientID: "c1", Status: "done"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].ID != "r2" {
		t.Errorf("expected only the done request, got %d entries", len(views))
	}
}

func TestRequestService_List_InvalidStatusFilterIgnored(t *testing.T) {
	reqs := newStubRequestRepo()
	seedRequest(reqs, "r1", "c1", "One", domain.StatusNew, time.Now().Add(-2*time.Minute))
	seedRequest(reqs, "r2", "c1", "Two", domain.StatusDone, time.Now().Add(-time.Minute))
	svc := newRequestSvc(reqs, clientFixture())

	// An unrecognized status value falls back to unfiltered rather than
	// failing. Deliberate leniency.
	views, err := svc.List(context.Background(), ports.ListRequestsInput{ClientID: "c1", Status: "bogus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("expected unfiltered result, got %d entries", len(views))
	}
}

func TestRequestService_List_QueryMatchesAcrossFields(t *testing.T) {
	reqs := newStubRequestRepo()
	a := seedRequest(reqs, "r1", "c1", "Printer broken", domain.StatusNew, time.Now().Add(-3*time.Minute))
	a.Tags = "hardware"
	b := seedRequest(reqs, "r2", "c1", "Invoice question", domain.StatusNew, time.Now().Add(-2*time.Minute))
	b.CustomerName = "Harding"
	seedRequest(reqs, "r3", "c1", "Unrelated", domain.StatusNew, time.Now().Add(-time.Minute))
	svc := newRequestSvc(reqs, clientFixture())

	views, err := svc.List(context.Background(), ports.ListRequestsInput{ClientID: "c1", Query: "HARD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 matches across tags and customer name, got %d", len(views))
	}
}

func TestRequestService_List_OrderedByUpdatedAtDesc(t *testing.T) {
	reqs := newStubRequestRepo()
	seedRequest(reqs, "old", "c1", "Old", domain.StatusNew, time.Now().Add(-time.Hour))
	seedRequest(reqs, "new", "c1", "New", domain.StatusNew, time.Now())
	svc := newRequestSvc(reqs, clientFixture())

	views, _ := svc.List(context.Background(), ports.ListRequestsInput{ClientID: "c1"})
	if len(views) != 2 || views[0].ID != "new" {
		t.Error("expected most recently updated first")
	}
}

func TestRequestService_List_ComputesDerivedFlags(t *testing.T) {
	reqs := newStubRequestRepo()
	overdue := seedRequest(reqs, "r1", "c1", "Late", domain.StatusDoing, time.Now().Add(-time.Hour))
	past := time.Now().Add(-time.Second)
	overdue.DueDate = &past
	stale := seedRequest(reqs, "r2", "c1", "Stuck", domain.StatusWaiting, time.Now().Add(-25*time.Hour))
	_ = stale
	seedRequest(reqs, "r3", "c1", "Fine", domain.StatusNew, time.Now())
	svc := newRequestSvc(reqs, clientFixture())

	views, err := svc.List(context.Background(), ports.ListRequestsInput{ClientID: "c1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flags := make(map[string]ports.RequestView, len(views))
	for _, v := range views {
		flags[v.ID] = v
	}
	if !flags["r1"].Overdue {
		t.Error("r1 must be flagged overdue")
	}
	if !flags["r2"].WaitingStale {
		t.Error("r2 must be flagged waiting-stale")
	}
	if flags["r3"].Overdue || flags["r3"].WaitingStale {
		t.Error("r3 must carry no derived flags")
	}
}
