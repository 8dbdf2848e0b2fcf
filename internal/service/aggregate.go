package service

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/models"
)

const topListSize = 10

var mobilePattern = regexp.MustCompile(`(?i)mobile|android|iphone|ipad|ipod|blackberry|windows phone|opera mini`)

// CalculateGrowth returns the whole-percent change from previous to current.
// A zero baseline reports 100 when anything happened and 0 otherwise, by
// convention rather than arithmetic.
func CalculateGrowth(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// isAdminPage reports whether a page view targets the admin surface.
// Admin traffic is the operator's own and is kept out of visitor metrics.
func isAdminPage(pageName string) bool {
	return strings.EqualFold(pageName, "admin")
}

// orderedCounter counts keys while remembering first-seen order, which
// breaks ties in the top lists.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: map[string]int{}}
}

func (c *orderedCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns the n most frequent keys, descending, ties in first-seen order.
func (c *orderedCounter) top(n int) []models.NameCount {
	ranked := make([]models.NameCount, 0, len(c.order))
	for _, key := range c.order {
		ranked = append(ranked, models.NameCount{Name: key, Count: c.counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// AggregateMetrics computes the dashboard metrics over one window of raw
// events. Pure so the classification rules stay testable without a store.
func AggregateMetrics(pageViews []models.PageView, imageViews []models.ImageView, interactions []models.Interaction) models.DashboardMetrics {
	visitors := map[string]struct{}{}
	sessions := map[string]struct{}{}
	pages := newOrderedCounter()
	images := newOrderedCounter()
	sources := map[string]int{"direct": 0, "referral": 0}
	devices := map[string]int{"mobile": 0, "desktop": 0}
	interactionTypes := map[string]int{}

	totalPageViews := 0
	for _, v := range pageViews {
		if isAdminPage(v.PageName) {
			continue
		}
		totalPageViews++
		visitors[v.VisitorID] = struct{}{}
		sessions[v.SessionID] = struct{}{}
		pages.add(v.PageName)

		if strings.TrimSpace(v.Referrer) == "" {
			sources["direct"]++
		} else {
			sources["referral"]++
		}

		if mobilePattern.MatchString(v.UserAgent) {
			devices["mobile"]++
		} else {
			devices["desktop"]++
		}
	}

	for _, v := range imageViews {
		visitors[v.VisitorID] = struct{}{}
		sessions[v.SessionID] = struct{}{}
		images.add(v.ImageTitle)
	}

	for _, v := range interactions {
		visitors[v.VisitorID] = struct{}{}
		sessions[v.SessionID] = struct{}{}
		interactionTypes[v.InteractionType]++
	}

	return models.DashboardMetrics{
		TotalPageViews:    totalPageViews,
		TotalImageViews:   len(imageViews),
		TotalInteractions: len(interactions),
		UniqueVisitors:    len(visitors),
		UniqueSessions:    len(sessions),
		PopularPages:      pages.top(topListSize),
		PopularImages:     images.top(topListSize),
		TrafficSources:    sources,
		DeviceTypes:       devices,
		InteractionTypes:  interactionTypes,
	}
}
