package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/service"
)

// Scheduler runs the nightly analytics rollup. Shortly after midnight UTC
// the previous day's totals are frozen into daily_summaries so the daily
// stats endpoint never re-scans history.
type Scheduler struct {
	cron      *cron.Cron
	analytics *service.AnalyticsService
	log       zerolog.Logger
}

func NewScheduler(analytics *service.AnalyticsService, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))
	return &Scheduler{
		cron:      c,
		analytics: analytics,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("10 0 * * *", s.rollupYesterday); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) rollupYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	if err := s.analytics.RollupDay(ctx, yesterday); err != nil {
		s.log.Error().Err(err).Msg("daily rollup failed")
		return
	}
	s.log.Info().Str("day", yesterday.Format("2006-01-02")).Msg("daily rollup complete")
}
