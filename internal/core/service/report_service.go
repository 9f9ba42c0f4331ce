package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/opsdesk/opsdesk/internal/api/metrics"
	"github.com/opsdesk/opsdesk/internal/core/domain"
	"github.com/opsdesk/opsdesk/internal/core/ports"
)

const (
	reportWindow = 7 * 24 * time.Hour
	topTagsLimit = 5
)

// ReportService computes the weekly aggregate report. It reads request
// records and never mutates them.
type ReportService struct {
	requests ports.RequestRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewReportService(requests ports.RequestRepository, clients ports.ClientRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{requests: requests, clients: clients, logger: logger}
}

// Weekly aggregates the client's requests over the trailing 7-day window
// [now-7d, now].
//
// "Completed" counts requests currently done whose updated_at falls inside
// the window. That approximates completion-this-week by last-touch time: a
// done request re-edited after the window drops out, and one completed
// earlier but touched inside the window is counted. The report's consumers
// expect exactly this behavior.
func (s *ReportService) Weekly(ctx context.Context, clientID string, now time.Time) (*ports.WeeklyReport, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration)
	defer timer.ObserveDuration()

	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: unknown client", domain.ErrValidation)
		}
		return nil, err
	}

	reqs, err := s.requests.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	from := now.Add(-reportWindow)
	report := &ports.WeeklyReport{
		ClientID: clientID,
		From:     from,
		To:       now,
	}

	for _, r := range reqs {
		// Created and Completed partition by current status: an in-window
		// creation that has since been completed shows up under Completed,
		// not Created.
		if inWindow(r.CreatedAt, from, now) && r.Status != domain.StatusDone {
			report.Created++
		}
		if r.Status == domain.StatusDone && inWindow(r.UpdatedAt, from, now) {
			report.Completed++
		}
		if r.Overdue(now) {
			report.Overdue++
		}
		if r.WaitingStale(now) {
			report.Waiting24hPlus++
		}
	}

	report.TopTags = topTags(reqs)
	s.logger.Debug().Str("client_id", clientID).Int("requests", len(reqs)).Msg("weekly report computed")
	return report, nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// topTags ranks tag frequency across all of the client's requests (no
// window restriction), top 5 by count descending. Ties keep the order in
// which a tag was first encountered in the scan.
func topTags(reqs []*domain.Request) []ports.TagCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range reqs {
		for _, tag := range domain.ParseTags(r.Tags) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	ranked := make([]ports.TagCount, len(order))
	for i, tag := range order {
		ranked[i] = ports.TagCount{Tag: tag, Count: counts[tag]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > topTagsLimit {
		ranked = ranked[:topTagsLimit]
	}
	return ranked
}
