package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/models"
)

func TestCalculateGrowth(t *testing.T) {
	tests := []struct {
		current, previous, want int
	}{
		{10, 0, 100},
		{0, 0, 0},
		{5, 10, -50},
		{10, 10, 0},
		{15, 10, 50},
		{1, 3, -67},
		{2, 3, -33},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateGrowth(tt.current, tt.previous),
			"growth(%d, %d)", tt.current, tt.previous)
	}
}

func TestAggregateMetricsExcludesAdminPageViews(t *testing.T) {
	pageViews := []models.PageView{
		{PageName: "gallery", VisitorID: "v1", SessionID: "s1"},
		{PageName: "Admin", VisitorID: "v-admin", SessionID: "s-admin"},
		{PageName: "ADMIN", VisitorID: "v-admin2", SessionID: "s-admin2"},
		{PageName: "about", VisitorID: "v2", SessionID: "s2"},
	}

	m := AggregateMetrics(pageViews, nil, nil)

	assert.Equal(t, 2, m.TotalPageViews)
	assert.Equal(t, 2, m.UniqueVisitors)
	assert.Equal(t, 2, m.UniqueSessions)
	for _, page := range m.PopularPages {
		assert.NotEqual(t, "Admin", page.Name)
		assert.NotEqual(t, "ADMIN", page.Name)
	}
}

func TestAggregateMetricsTopPagesOrderAndTies(t *testing.T) {
	var pageViews []models.PageView
	add := func(page string, n int) {
		for i := 0; i < n; i++ {
			pageViews = append(pageViews, models.PageView{
				PageName:  page,
				VisitorID: fmt.Sprintf("v-%s-%d", page, i),
				SessionID: fmt.Sprintf("s-%s-%d", page, i),
			})
		}
	}
	add("gallery", 3)
	add("about", 2)
	add("contact", 2)
	add("services", 1)

	m := AggregateMetrics(pageViews, nil, nil)

	require.Len(t, m.PopularPages, 4)
	assert.Equal(t, "gallery", m.PopularPages[0].Name)
	assert.Equal(t, 3, m.PopularPages[0].Count)
	// about and contact tie at 2; first-seen order breaks the tie.
	assert.Equal(t, "about", m.PopularPages[1].Name)
	assert.Equal(t, "contact", m.PopularPages[2].Name)
	assert.Equal(t, "services", m.PopularPages[3].Name)
}

func TestAggregateMetricsTopListCapped(t *testing.T) {
	var imageViews []models.ImageView
	for i := 0; i < 15; i++ {
		imageViews = append(imageViews, models.ImageView{
			ImageTitle: fmt.Sprintf("image-%02d", i),
			VisitorID:  "v1",
			SessionID:  "s1",
		})
	}

	m := AggregateMetrics(nil, imageViews, nil)

	assert.Len(t, m.PopularImages, 10)
	assert.Equal(t, 15, m.TotalImageViews)
}

func TestAggregateMetricsTrafficSources(t *testing.T) {
	pageViews := []models.PageView{
		{PageName: "home", VisitorID: "v1", SessionID: "s1", Referrer: ""},
		{PageName: "home", VisitorID: "v2", SessionID: "s2", Referrer: "   "},
		{PageName: "home", VisitorID: "v3", SessionID: "s3", Referrer: "https://google.com"},
	}

	m := AggregateMetrics(pageViews, nil, nil)

	assert.Equal(t, 2, m.TrafficSources["direct"])
	assert.Equal(t, 1, m.TrafficSources["referral"])
}

func TestAggregateMetricsDeviceTypes(t *testing.T) {
	pageViews := []models.PageView{
		{PageName: "home", VisitorID: "v1", SessionID: "s1", UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"},
		{PageName: "home", VisitorID: "v2", SessionID: "s2", UserAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8)"},
		{PageName: "home", VisitorID: "v3", SessionID: "s3", UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"},
	}

	m := AggregateMetrics(pageViews, nil, nil)

	assert.Equal(t, 2, m.DeviceTypes["mobile"])
	assert.Equal(t, 1, m.DeviceTypes["desktop"])
}

func TestAggregateMetricsInteractionTypes(t *testing.T) {
	interactions := []models.Interaction{
		{InteractionType: "share", VisitorID: "v1", SessionID: "s1"},
		{InteractionType: "share", VisitorID: "v2", SessionID: "s2"},
		{InteractionType: "download", VisitorID: "v1", SessionID: "s1"},
	}

	m := AggregateMetrics(nil, nil, interactions)

	assert.Equal(t, 3, m.TotalInteractions)
	assert.Equal(t, 2, m.InteractionTypes["share"])
	assert.Equal(t, 1, m.InteractionTypes["download"])
}

func TestAggregateMetricsUniqueAcrossCollections(t *testing.T) {
	pageViews := []models.PageView{
		{PageName: "home", VisitorID: "v1", SessionID: "s1"},
	}
	imageViews := []models.ImageView{
		{ImageTitle: "Heron", VisitorID: "v1", SessionID: "s1"},
		{ImageTitle: "Heron", VisitorID: "v2", SessionID: "s2"},
	}

	m := AggregateMetrics(pageViews, imageViews, nil)

	assert.Equal(t, 2, m.UniqueVisitors)
	assert.Equal(t, 2, m.UniqueSessions)
}

func TestAggregateMetricsEmpty(t *testing.T) {
	m := AggregateMetrics(nil, nil, nil)

	assert.Zero(t, m.TotalPageViews)
	assert.Zero(t, m.UniqueVisitors)
	assert.Empty(t, m.PopularPages)
	assert.Empty(t, m.PopularImages)
	assert.Equal(t, 0, m.TrafficSources["direct"])
	assert.Equal(t, 0, m.DeviceTypes["desktop"])
}
