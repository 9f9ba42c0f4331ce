package handler

import (
	"encoding/json"
	"time"

	"github.com/opsdesk/opsdesk/internal/core/ports"
)

// patchField distinguishes the three states a field of a PATCH payload can
// be in: absent (leave unchanged), JSON null (clear), or a value (set).
// encoding/json only calls UnmarshalJSON for keys present in the payload,
// which is what makes the absent case detectable.
type patchField[T any] struct {
	set   bool
	value *T
}

func (p *patchField[T]) UnmarshalJSON(b []byte) error {
	p.set = true
	if string(b) == "null" {
		p.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.value = &v
	return nil
}

func (p patchField[T]) toPatch() ports.Patch[T] {
	return ports.Patch[T]{Set: p.set, Value: p.value}
}

type createRequestRequest struct {
	ClientID     string     `json:"client_id" validate:"required"`
	Title        string     `json:"title"     validate:"required"`
	Details      string     `json:"details"`
	CustomerName string     `json:"customer_name"`
	Tags         string     `json:"tags"`
	DueDate      *time.Time `json:"due_date"`
}

type updateRequestRequest struct {
	Title        patchField[string]    `json:"title"`
	Details      patchField[string]    `json:"details"`
	CustomerName patchField[string]    `json:"customer_name"`
	Tags         patchField[string]    `json:"tags"`
	DueDate      patchField[time.Time] `json:"due_date"`
	Status       patchField[string]    `json:"status"`
}

func (r *updateRequestRequest) toInput() ports.UpdateRequestInput {
	return ports.UpdateRequestInput{
		Title:        r.Title.toPatch(),
		Details:      r.Details.toPatch(),
		CustomerName: r.CustomerName.toPatch(),
		Tags:         r.Tags.toPatch(),
		DueDate:      r.DueDate.toPatch(),
		Status:       r.Status.toPatch(),
	}
}

type listRequestsResponse struct {
	Data []ports.RequestView `json:"data"`
}
