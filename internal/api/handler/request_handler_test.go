package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opsdesk/opsdesk/internal/core/domain"
	"github.com/opsdesk/opsdesk/internal/core/ports"
)

type stubRequestService struct {
	createFn func(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error)
	editFn   func(ctx context.Context, id string, in ports.UpdateRequestInput) (*domain.Request, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, in ports.ListRequestsInput) ([]ports.RequestView, error)
}

func (s *stubRequestService) Create(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
	return s.createFn(ctx, in)
}

func (s *stubRequestService) Edit(ctx context.Context, id string, in ports.UpdateRequestInput) (*domain.Request, error) {
	return s.editFn(ctx, id, in)
}

func (s *stubRequestService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubRequestService) List(ctx context.Context, in ports.ListRequestsInput) ([]ports.RequestView, error) {
	return s.listFn(ctx, in)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestRequestHandler_Create_UsesOperatorIdentity(t *testing.T) {
	e := newEcho()
	var got ports.CreateRequestInput
	stub := &stubRequestService{
		createFn: func(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
			got = in
			return &domain.Request{ID: "r1", ClientID: in.ClientID, Title: in.Title}, nil
		},
	}
	h := NewRequestHandler(stub)

	body := strings.NewReader(`{"client_id":"c1","title":"Fix the printer","tags":"office, hardware"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/requests", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "operator")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.CreatedBy != "operator" {
		t.Fatalf("expected createdBy from context, got %q", got.CreatedBy)
	}
	if got.ClientID != "c1" || got.Title != "Fix the printer" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestRequestHandler_Create_MissingTitle(t *testing.T) {
	e := newEcho()
	stub := &stubRequestService{
		createFn: func(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/requests", strings.NewReader(`{"client_id":"c1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRequestHandler_Edit_PatchSemantics(t *testing.T) {
	e := newEcho()
	var got ports.UpdateRequestInput
	stub := &stubRequestService{
		editFn: func(ctx context.Context, id string, in ports.UpdateRequestInput) (*domain.Request, error) {
			if id != "r1" {
				t.Fatalf("unexpected id %q", id)
			}
			got = in
			return &domain.Request{ID: id}, nil
		},
	}
	h := NewRequestHandler(stub)

	// title set, due_date explicitly cleared, everything else absent.
	body := strings.NewReader(`{"title":"New title","due_date":null}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/requests/r1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !got.Title.Set || got.Title.Value == nil || *got.Title.Value != "New title" {
		t.Fatalf("title patch not decoded: %+v", got.Title)
	}
	if !got.DueDate.Set || got.DueDate.Value != nil {
		t.Fatalf("null due_date must decode as set-with-nil: %+v", got.DueDate)
	}
	if got.Details.Set || got.Status.Set || got.Tags.Set || got.CustomerName.Set {
		t.Fatalf("absent fields must stay unset: %+v", got)
	}
}

func TestRequestHandler_Edit_ValueDueDate(t *testing.T) {
	e := newEcho()
	var got ports.UpdateRequestInput
	stub := &stubRequestService{
		editFn: func(ctx context.Context, id string, in ports.UpdateRequestInput) (*domain.Request, error) {
			got = in
			return &domain.Request{ID: id}, nil
		},
	}
	h := NewRequestHandler(stub)

	body := strings.NewReader(`{"due_date":"2026-09-01T12:00:00Z","status":"doing"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/requests/r1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if !got.DueDate.Set || got.DueDate.Value == nil || !got.DueDate.Value.Equal(want) {
		t.Fatalf("due_date not decoded: %+v", got.DueDate)
	}
	if !got.Status.Set || got.Status.Value == nil || *got.Status.Value != "doing" {
		t.Fatalf("status not decoded: %+v", got.Status)
	}
}

func TestRequestHandler_List_ForwardsQueryParams(t *testing.T) {
	e := newEcho()
	stub := &stubRequestService{
		listFn: func(ctx context.Context, in ports.ListRequestsInput) ([]ports.RequestView, error) {
			if in.ClientID != "c1" || in.Status != "waiting" || in.Query != "printer" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, nil
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/requests?client_id=c1&status=waiting&q=printer", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("empty list must render as [], got %s", rec.Body.String())
	}
}

func TestRequestHandler_Delete(t *testing.T) {
	e := newEcho()
	deleted := ""
	stub := &stubRequestService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/requests/r9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r9")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "r9" {
		t.Fatalf("expected delete of r9, got %q", deleted)
	}
}
