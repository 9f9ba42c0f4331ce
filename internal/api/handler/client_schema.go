package handler

import (
	"time"

	"github.com/opsdesk/opsdesk/internal/core/domain"
)

// errorResponse mirrors the envelope the central error handler renders on
// every 4xx/5xx. Referenced by the route annotations.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type createClientRequest struct {
	Name string `json:"name" validate:"required"`
}

type clientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SubmissionCode string    `json:"submission_code"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:             c.ID,
		Name:           c.Name,
		SubmissionCode: c.SubmissionCode,
		Archived:       c.Archived,
		CreatedAt:      c.CreatedAt,
	}
}

// pinResponse carries the PIN on the operator-only read and rotate calls.
// It is the only place a PIN ever appears in a response body.
type pinResponse struct {
	PIN string `json:"pin"`
}

type listClientsResponse struct {
	Data []clientResponse `json:"data"`
}
