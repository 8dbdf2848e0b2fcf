package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/ids"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/models"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/repository"
)

// dashboardEventCap bounds the raw event arrays the dashboard hauls back.
const dashboardEventCap = 1000

var timeRanges = map[string]time.Duration{
	"1d":  24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// ErrUnknownEventType rejects track payloads with an unrecognized type.
var ErrUnknownEventType = errors.New("unknown event type")

// AnalyticsService aggregates the event collections. Every per-collection
// query failure is logged and collapsed to an empty result so the summary
// and dashboard stay available when one index is broken.
type AnalyticsService struct {
	events *repository.EventRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewAnalyticsService(events *repository.EventRepository, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Summary compares today with yesterday and the trailing seven days.
func (s *AnalyticsService) Summary(ctx context.Context) models.Summary {
	now := s.now().UTC()
	todayStart := now.Truncate(24 * time.Hour)
	yesterdayStart := todayStart.Add(-24 * time.Hour)
	weekStart := now.Add(-7 * 24 * time.Hour)

	today := s.period(ctx, todayStart, now)
	yesterday := s.period(ctx, yesterdayStart, todayStart)
	lastWeek := s.period(ctx, weekStart, now)

	return models.Summary{
		Today:              today,
		Yesterday:          yesterday,
		LastWeek:           lastWeek,
		PageViewsGrowth:    CalculateGrowth(today.PageViews, yesterday.PageViews),
		ImageViewsGrowth:   CalculateGrowth(today.ImageViews, yesterday.ImageViews),
		InteractionsGrowth: CalculateGrowth(today.Interactions, yesterday.Interactions),
		VisitorsGrowth:     CalculateGrowth(today.UniqueVisitors, yesterday.UniqueVisitors),
	}
}

func (s *AnalyticsService) period(ctx context.Context, start, end time.Time) models.SummaryPeriod {
	return models.SummaryPeriod{
		PageViews:      s.count(ctx, "page_views", start, end, s.events.CountPageViews),
		ImageViews:     s.count(ctx, "image_views", start, end, s.events.CountImageViews),
		Interactions:   s.count(ctx, "interactions", start, end, s.events.CountInteractions),
		UniqueVisitors: s.count(ctx, "unique_visitors", start, end, s.events.CountUniqueVisitors),
	}
}

func (s *AnalyticsService) count(ctx context.Context, what string, start, end time.Time, fn func(context.Context, time.Time, time.Time) (int, error)) int {
	n, err := fn(ctx, start, end)
	if err != nil {
		s.log.Warn().Err(err).Str("metric", what).Msg("analytics query failed, using zero")
		return 0
	}
	return n
}

// Dashboard fetches the window's raw events (capped) and computes the
// metrics over them. Unknown time ranges fall back to 7d.
func (s *AnalyticsService) Dashboard(ctx context.Context, timeRange string) models.Dashboard {
	duration, ok := timeRanges[timeRange]
	if !ok {
		timeRange = "7d"
		duration = timeRanges[timeRange]
	}

	end := s.now().UTC()
	start := end.Add(-duration)

	pageViews, err := s.events.PageViewsBetween(ctx, start, end, dashboardEventCap)
	if err != nil {
		s.log.Warn().Err(err).Msg("page view query failed, using empty set")
		pageViews = nil
	}
	imageViews, err := s.events.ImageViewsBetween(ctx, start, end, dashboardEventCap)
	if err != nil {
		s.log.Warn().Err(err).Msg("image view query failed, using empty set")
		imageViews = nil
	}
	interactions, err := s.events.InteractionsBetween(ctx, start, end, dashboardEventCap)
	if err != nil {
		s.log.Warn().Err(err).Msg("interaction query failed, using empty set")
		interactions = nil
	}

	return models.Dashboard{
		Metrics:      AggregateMetrics(pageViews, imageViews, interactions),
		PageViews:    pageViews,
		ImageViews:   imageViews,
		Interactions: interactions,
		TimeRange:    timeRange,
		StartDate:    start,
		EndDate:      end,
	}
}

// ImageStats reports the most viewed images of all time.
func (s *AnalyticsService) ImageStats(ctx context.Context, limit int) []models.ImageStat {
	if limit < 1 {
		limit = topListSize
	}
	stats, err := s.events.TopImages(ctx, limit)
	if err != nil {
		s.log.Warn().Err(err).Msg("image stats query failed, using empty set")
		return []models.ImageStat{}
	}
	return stats
}

// DailyStats returns one row per day for the last days days, oldest first.
// Past days come from the nightly rollup; today is always computed live.
func (s *AnalyticsService) DailyStats(ctx context.Context, days int) []models.DailyStat {
	if days < 1 {
		days = 7
	}

	now := s.now().UTC()
	todayStart := now.Truncate(24 * time.Hour)
	since := todayStart.AddDate(0, 0, -(days - 1))

	rolled, err := s.events.DailySummaries(ctx, since)
	if err != nil {
		s.log.Warn().Err(err).Msg("daily summary query failed, using empty set")
		rolled = nil
	}
	byDate := make(map[string]models.DailyStat, len(rolled))
	for _, r := range rolled {
		byDate[r.Date] = r
	}

	stats := make([]models.DailyStat, 0, days)
	for day := since; !day.After(todayStart); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		if day.Equal(todayStart) {
			live := s.period(ctx, todayStart, now)
			stats = append(stats, models.DailyStat{
				Date:           date,
				PageViews:      live.PageViews,
				ImageViews:     live.ImageViews,
				Interactions:   live.Interactions,
				UniqueVisitors: live.UniqueVisitors,
			})
			continue
		}
		row := byDate[date]
		row.Date = date
		stats = append(stats, row)
	}
	return stats
}

// TrackInput is one incoming analytics event.
type TrackInput struct {
	Type            string
	PageName        string
	ImageTitle      string
	InteractionType string
	Target          string
	VisitorID       string
	SessionID       string
	Referrer        string
	UserAgent       string
}

// Track records one event, registering its visitor and session on the way.
func (s *AnalyticsService) Track(ctx context.Context, in TrackInput) error {
	now := s.now().UTC()

	if in.VisitorID != "" {
		if err := s.events.EnsureVisitor(ctx, in.VisitorID, now); err != nil {
			s.log.Warn().Err(err).Msg("visitor upsert failed")
		}
	}
	if in.SessionID != "" {
		if err := s.events.EnsureSession(ctx, in.SessionID, in.VisitorID, now); err != nil {
			s.log.Warn().Err(err).Msg("session upsert failed")
		}
	}

	switch in.Type {
	case "pageview":
		return s.events.InsertPageView(ctx, models.PageView{
			ID:         ids.New(),
			PageName:   in.PageName,
			VisitorID:  in.VisitorID,
			SessionID:  in.SessionID,
			Referrer:   in.Referrer,
			UserAgent:  in.UserAgent,
			OccurredAt: now,
		})
	case "imageview":
		return s.events.InsertImageView(ctx, models.ImageView{
			ID:         ids.New(),
			ImageTitle: in.ImageTitle,
			VisitorID:  in.VisitorID,
			SessionID:  in.SessionID,
			Referrer:   in.Referrer,
			UserAgent:  in.UserAgent,
			OccurredAt: now,
		})
	case "interaction":
		return s.events.InsertInteraction(ctx, models.Interaction{
			ID:              ids.New(),
			InteractionType: in.InteractionType,
			Target:          in.Target,
			VisitorID:       in.VisitorID,
			SessionID:       in.SessionID,
			Referrer:        in.Referrer,
			UserAgent:       in.UserAgent,
			OccurredAt:      now,
		})
	default:
		return ErrUnknownEventType
	}
}

// Clear wipes all six collections best-effort: a failed collection is
// recorded as zero deletions and the rest still run. Nothing is rolled back.
func (s *AnalyticsService) Clear(ctx context.Context) models.ClearResult {
	result := models.ClearResult{Results: make(map[string]int64, len(repository.Collections))}

	for _, collection := range repository.Collections {
		deleted, err := s.events.DeleteAll(ctx, collection)
		if err != nil {
			s.log.Error().Err(err).Str("collection", collection).Msg("clear failed for collection")
			result.Results[collection] = 0
			continue
		}
		result.Results[collection] = deleted
		result.TotalDeleted += deleted
	}
	return result
}

// RollupDay computes one day's totals and writes them to daily_summaries.
func (s *AnalyticsService) RollupDay(ctx context.Context, day time.Time) error {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	p := s.period(ctx, dayStart, dayEnd)
	return s.events.UpsertDailySummary(ctx, models.DailyStat{
		Date:           dayStart.Format("2006-01-02"),
		PageViews:      p.PageViews,
		ImageViews:     p.ImageViews,
		Interactions:   p.Interactions,
		UniqueVisitors: p.UniqueVisitors,
	})
}
