package ports

import (
	"context"
	"time"
)

// TagCount is one entry of the tag frequency ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// WeeklyReport aggregates a client's requests over the trailing 7-day
// window [From, To]. TopTags ranks all-time tag usage, not just the window.
type WeeklyReport struct {
	ClientID       string     `json:"client_id"`
	From           time.Time  `json:"from"`
	To             time.Time  `json:"to"`
	Created        int        `json:"created"`
	Completed      int        `json:"completed"`
	Overdue        int        `json:"overdue"`
	Waiting24hPlus int        `json:"waiting_24h_plus"`
	TopTags        []TagCount `json:"top_tags"`
}

// ReportService computes read-only aggregates over request records.
type ReportService interface {
	Weekly(ctx context.Context, clientID string, now time.Time) (*WeeklyReport, error)
}
