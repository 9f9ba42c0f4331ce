package domain

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a tracked request.
type Status string

const (
	StatusNew     Status = "new"
	StatusDoing   Status = "doing"
	StatusWaiting Status = "waiting"
	StatusDone    Status = "done"
)

// validStatuses is the full membership set. Transitions are a free graph:
// any status may move directly to any other, including reopening a done
// request. Validity of the target value is the only gate.
var validStatuses = map[Status]struct{}{
	StatusNew:     {},
	StatusDoing:   {},
	StatusWaiting: {},
	StatusDone:    {},
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// CreatedByPublicLink is the provenance sentinel stored on requests created
// through the public intake form rather than by the operator.
const CreatedByPublicLink = "public-link"

// WaitingStaleAfter is how long a waiting request may sit untouched before
// it is flagged as stale.
const WaitingStaleAfter = 24 * time.Hour

// Request is a tracked work item owned by a client.
type Request struct {
	ID           string     `json:"id" bson:"_id"`
	ClientID     string     `json:"client_id" bson:"client_id"`
	Title        string     `json:"title" bson:"title"`
	Details      string     `json:"details,omitempty" bson:"details,omitempty"`
	CustomerName string     `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	Tags         string     `json:"tags,omitempty" bson:"tags,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Status       Status     `json:"status" bson:"status"`
	CreatedBy    string     `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Overdue reports whether the request has a due date strictly in the past
// and has not been completed. Requests without a due date are never overdue.
func (r *Request) Overdue(now time.Time) bool {
	if r.DueDate == nil || r.DueDate.IsZero() {
		return false
	}
	return r.Status != StatusDone && r.DueDate.Before(now)
}

// WaitingStale reports whether the request is in waiting and has not been
// touched for more than WaitingStaleAfter.
func (r *Request) WaitingStale(now time.Time) bool {
	return r.Status == StatusWaiting && now.Sub(r.UpdatedAt) > WaitingStaleAfter
}

// ParseTags splits a comma-separated tag field into trimmed, lowercased
// tokens. Empty tokens are dropped.
func ParseTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
