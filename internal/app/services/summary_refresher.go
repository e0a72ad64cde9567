package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// SummaryRefresher periodically refreshes every student's financial
// summary, so figures stay current while fee schedules or payments
// change underneath open dashboards.
type SummaryRefresher struct {
	students *StudentService
	interval time.Duration
}

// NewSummaryRefresher creates a refresher with the given interval.
func NewSummaryRefresher(students *StudentService, interval time.Duration) *SummaryRefresher {
	return &SummaryRefresher{
		students: students,
		interval: interval,
	}
}

// Run refreshes summaries on each tick until the context is cancelled.
// It blocks; callers start it on its own goroutine.
func (r *SummaryRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", r.interval).Msg("Financial summary refresher started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Financial summary refresher stopped")
			return
		case <-ticker.C:
			if err := r.students.RecomputeAllSummaries(ctx); err != nil {
				log.Error().Err(err).Msg("Financial summary refresh pass failed")
			}
		}
	}
}
