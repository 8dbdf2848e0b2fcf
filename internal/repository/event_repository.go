package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/models"
)

// Collections are the six analytics tables, in bulk-delete order.
var Collections = []string{
	"page_views",
	"image_views",
	"interactions",
	"sessions",
	"visitors",
	"daily_summaries",
}

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) InsertPageView(ctx context.Context, v models.PageView) error {
	const query = `
		INSERT INTO page_views (id, page_name, visitor_id, session_id, referrer, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		v.ID, v.PageName, v.VisitorID, v.SessionID, v.Referrer, v.UserAgent, v.OccurredAt)
	return err
}

func (r *EventRepository) InsertImageView(ctx context.Context, v models.ImageView) error {
	const query = `
		INSERT INTO image_views (id, image_title, visitor_id, session_id, referrer, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		v.ID, v.ImageTitle, v.VisitorID, v.SessionID, v.Referrer, v.UserAgent, v.OccurredAt)
	return err
}

func (r *EventRepository) InsertInteraction(ctx context.Context, v models.Interaction) error {
	const query = `
		INSERT INTO interactions (id, interaction_type, target, visitor_id, session_id, referrer, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		v.ID, v.InteractionType, v.Target, v.VisitorID, v.SessionID, v.Referrer, v.UserAgent, v.OccurredAt)
	return err
}

// EnsureVisitor records a visitor the first time it is seen.
func (r *EventRepository) EnsureVisitor(ctx context.Context, visitorID string, at time.Time) error {
	const query = `
		INSERT INTO visitors (id, first_seen_at) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, visitorID, at)
	return err
}

// EnsureSession records a browsing session the first time it is seen.
func (r *EventRepository) EnsureSession(ctx context.Context, sessionID, visitorID string, at time.Time) error {
	const query = `
		INSERT INTO sessions (id, visitor_id, started_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, sessionID, visitorID, at)
	return err
}

// CountPageViews counts page views in [start, end), excluding admin pages.
func (r *EventRepository) CountPageViews(ctx context.Context, start, end time.Time) (int, error) {
	const query = `
		SELECT COUNT(*) FROM page_views
		WHERE occurred_at >= $1 AND occurred_at < $2 AND LOWER(page_name) <> 'admin'
	`
	var n int
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&n)
	return n, err
}

// CountUniqueVisitors counts distinct visitors on non-admin pages in [start, end).
func (r *EventRepository) CountUniqueVisitors(ctx context.Context, start, end time.Time) (int, error) {
	const query = `
		SELECT COUNT(DISTINCT visitor_id) FROM page_views
		WHERE occurred_at >= $1 AND occurred_at < $2 AND LOWER(page_name) <> 'admin'
	`
	var n int
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&n)
	return n, err
}

func (r *EventRepository) CountImageViews(ctx context.Context, start, end time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM image_views WHERE occurred_at >= $1 AND occurred_at < $2`
	var n int
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&n)
	return n, err
}

func (r *EventRepository) CountInteractions(ctx context.Context, start, end time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM interactions WHERE occurred_at >= $1 AND occurred_at < $2`
	var n int
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&n)
	return n, err
}

// PageViewsBetween returns up to limit page views in [start, end), newest first.
func (r *EventRepository) PageViewsBetween(ctx context.Context, start, end time.Time, limit int) ([]models.PageView, error) {
	const query = `
		SELECT id, page_name, visitor_id, session_id, referrer, user_agent, occurred_at
		FROM page_views
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.PageView
	for rows.Next() {
		var v models.PageView
		if err := rows.Scan(&v.ID, &v.PageName, &v.VisitorID, &v.SessionID, &v.Referrer, &v.UserAgent, &v.OccurredAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *EventRepository) ImageViewsBetween(ctx context.Context, start, end time.Time, limit int) ([]models.ImageView, error) {
	const query = `
		SELECT id, image_title, visitor_id, session_id, referrer, user_agent, occurred_at
		FROM image_views
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.ImageView
	for rows.Next() {
		var v models.ImageView
		if err := rows.Scan(&v.ID, &v.ImageTitle, &v.VisitorID, &v.SessionID, &v.Referrer, &v.UserAgent, &v.OccurredAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *EventRepository) InteractionsBetween(ctx context.Context, start, end time.Time, limit int) ([]models.Interaction, error) {
	const query = `
		SELECT id, interaction_type, target, visitor_id, session_id, referrer, user_agent, occurred_at
		FROM interactions
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Interaction
	for rows.Next() {
		var v models.Interaction
		if err := rows.Scan(&v.ID, &v.InteractionType, &v.Target, &v.VisitorID, &v.SessionID, &v.Referrer, &v.UserAgent, &v.OccurredAt); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// TopImages returns the most viewed image titles of all time.
func (r *EventRepository) TopImages(ctx context.Context, limit int) ([]models.ImageStat, error) {
	const query = `
		SELECT image_title, COUNT(*) AS views
		FROM image_views
		GROUP BY image_title
		ORDER BY views DESC, MIN(occurred_at) ASC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.ImageStat
	for rows.Next() {
		var s models.ImageStat
		if err := rows.Scan(&s.ImageTitle, &s.Views); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// DailySummaries returns rolled-up days newer than since, oldest first.
func (r *EventRepository) DailySummaries(ctx context.Context, since time.Time) ([]models.DailyStat, error) {
	const query = `
		SELECT day, page_views, image_views, interactions, unique_visitors
		FROM daily_summaries
		WHERE day >= $1
		ORDER BY day ASC
	`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var s models.DailyStat
		var day time.Time
		if err := rows.Scan(&day, &s.PageViews, &s.ImageViews, &s.Interactions, &s.UniqueVisitors); err != nil {
			return nil, err
		}
		s.Date = day.Format("2006-01-02")
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// UpsertDailySummary writes one day's rollup, replacing any previous run.
func (r *EventRepository) UpsertDailySummary(ctx context.Context, s models.DailyStat) error {
	day, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", s.Date, err)
	}

	const query = `
		INSERT INTO daily_summaries (day, page_views, image_views, interactions, unique_visitors)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (day) DO UPDATE SET
			page_views = EXCLUDED.page_views,
			image_views = EXCLUDED.image_views,
			interactions = EXCLUDED.interactions,
			unique_visitors = EXCLUDED.unique_visitors
	`
	_, err = r.pool.Exec(ctx, query, day, s.PageViews, s.ImageViews, s.Interactions, s.UniqueVisitors)
	return err
}

// DeleteAll removes every row of one analytics collection and reports how
// many went. The name must be one of Collections; it is interpolated, not
// bound, because table names cannot be query parameters.
func (r *EventRepository) DeleteAll(ctx context.Context, collection string) (int64, error) {
	known := false
	for _, c := range Collections {
		if c == collection {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}

	tag, err := r.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", collection))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
