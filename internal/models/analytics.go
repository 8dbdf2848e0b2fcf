package models

import "time"

// PageView is one recorded page visit.
type PageView struct {
	ID         string    `json:"id"`
	PageName   string    `json:"pageName"`
	VisitorID  string    `json:"visitorId"`
	SessionID  string    `json:"sessionId"`
	Referrer   string    `json:"referrer"`
	UserAgent  string    `json:"userAgent"`
	OccurredAt time.Time `json:"timestamp"`
}

// ImageView is one recorded gallery image view.
type ImageView struct {
	ID         string    `json:"id"`
	ImageTitle string    `json:"imageTitle"`
	VisitorID  string    `json:"visitorId"`
	SessionID  string    `json:"sessionId"`
	Referrer   string    `json:"referrer"`
	UserAgent  string    `json:"userAgent"`
	OccurredAt time.Time `json:"timestamp"`
}

// Interaction is one recorded UI interaction (share, download, inquiry...).
type Interaction struct {
	ID              string    `json:"id"`
	InteractionType string    `json:"interactionType"`
	Target          string    `json:"target"`
	VisitorID       string    `json:"visitorId"`
	SessionID       string    `json:"sessionId"`
	Referrer        string    `json:"referrer"`
	UserAgent       string    `json:"userAgent"`
	OccurredAt      time.Time `json:"timestamp"`
}

// SummaryPeriod is one window's headline counts.
type SummaryPeriod struct {
	PageViews      int `json:"pageViews"`
	ImageViews     int `json:"imageViews"`
	Interactions   int `json:"interactions"`
	UniqueVisitors int `json:"uniqueVisitors"`
}

// Summary compares today against yesterday and the trailing week. Growth is
// today-over-yesterday, in whole percent.
type Summary struct {
	Today              SummaryPeriod `json:"today"`
	Yesterday          SummaryPeriod `json:"yesterday"`
	LastWeek           SummaryPeriod `json:"lastWeek"`
	PageViewsGrowth    int           `json:"pageViewsGrowth"`
	ImageViewsGrowth   int           `json:"imageViewsGrowth"`
	InteractionsGrowth int           `json:"interactionsGrowth"`
	VisitorsGrowth     int           `json:"visitorsGrowth"`
}

// NameCount pairs a label with a frequency, ordered lists only.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardMetrics are the aggregates computed over one dashboard window.
type DashboardMetrics struct {
	TotalPageViews    int            `json:"totalPageViews"`
	TotalImageViews   int            `json:"totalImageViews"`
	TotalInteractions int            `json:"totalInteractions"`
	UniqueVisitors    int            `json:"uniqueVisitors"`
	UniqueSessions    int            `json:"uniqueSessions"`
	PopularPages      []NameCount    `json:"popularPages"`
	PopularImages     []NameCount    `json:"popularImages"`
	TrafficSources    map[string]int `json:"trafficSources"`
	DeviceTypes       map[string]int `json:"deviceTypes"`
	InteractionTypes  map[string]int `json:"interactionTypes"`
}

// Dashboard is the full dashboard payload: computed metrics plus the raw
// capped event arrays the admin UI renders as activity feeds.
type Dashboard struct {
	Metrics      DashboardMetrics `json:"metrics"`
	PageViews    []PageView       `json:"pageViews"`
	ImageViews   []ImageView      `json:"imageViews"`
	Interactions []Interaction    `json:"interactions"`
	TimeRange    string           `json:"timeRange"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
}

// ImageStat is one row of the image popularity report.
type ImageStat struct {
	ImageTitle string `json:"imageTitle"`
	Views      int    `json:"views"`
}

// DailyStat is one day's traffic, driven by the nightly rollup plus a live
// aggregate for days the rollup has not covered yet.
type DailyStat struct {
	Date           string `json:"date"`
	PageViews      int    `json:"pageViews"`
	ImageViews     int    `json:"imageViews"`
	Interactions   int    `json:"interactions"`
	UniqueVisitors int    `json:"uniqueVisitors"`
}

// ClearResult reports the best-effort bulk delete: per-collection deleted
// counts, with failed collections recorded as zero.
type ClearResult struct {
	TotalDeleted int64            `json:"totalDeleted"`
	Results      map[string]int64 `json:"results"`
}
