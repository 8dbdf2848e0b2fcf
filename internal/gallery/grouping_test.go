package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSeriesAndStandalone(t *testing.T) {
	images := []ImageRecord{
		{Title: "Heron", IsSeries: true, SeriesIndex: 1, Src: "u/heron.1.jpg", Alt: "heron one", Description: "wading birds"},
		{Title: "Sunset", IsSeries: false, Src: "u/sunset.jpg", Alt: "sunset"},
		{Title: "Heron", IsSeries: true, SeriesIndex: 2, Src: "u/heron.2.jpg", Alt: "heron two"},
	}

	groups := Group(images)

	require.Len(t, groups, 2)

	heron := groups[0]
	assert.Equal(t, 1, heron.ID)
	assert.Equal(t, "Heron", heron.Title)
	assert.True(t, heron.IsSeries)
	// First member supplies the representative fields.
	assert.Equal(t, "heron one", heron.Alt)
	assert.Equal(t, "wading birds", heron.Description)
	assert.Equal(t, []string{"u/heron.1.jpg", "u/heron.2.jpg"}, heron.Images)

	sunset := groups[1]
	assert.Equal(t, 2, sunset.ID)
	assert.Equal(t, "Sunset", sunset.Title)
	assert.False(t, sunset.IsSeries)
	assert.Equal(t, []string{"u/sunset.jpg"}, sunset.Images)
}

func TestGroupKeepsEncounterOrderNotSeriesIndex(t *testing.T) {
	// Members arrive out of index order; the group keeps listing order.
	images := []ImageRecord{
		{Title: "Heron", IsSeries: true, SeriesIndex: 3, Src: "u/heron.3.jpg"},
		{Title: "Heron", IsSeries: true, SeriesIndex: 1, Src: "u/heron.1.jpg"},
		{Title: "Heron", IsSeries: true, SeriesIndex: 2, Src: "u/heron.2.jpg"},
	}

	groups := Group(images)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"u/heron.3.jpg", "u/heron.1.jpg", "u/heron.2.jpg"}, groups[0].Images)
}

func TestGroupStandaloneNeverMergesIntoSeries(t *testing.T) {
	images := []ImageRecord{
		{Title: "Heron", IsSeries: true, SeriesIndex: 1, Src: "u/heron.1.jpg"},
		{Title: "Heron", IsSeries: false, Src: "u/heron-single.jpg"},
	}

	groups := Group(images)

	// Same title, but the standalone image keys separately.
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"u/heron.1.jpg"}, groups[0].Images)
	assert.Equal(t, []string{"u/heron-single.jpg"}, groups[1].Images)
}

func TestGroupUntitledStandaloneKeyedByName(t *testing.T) {
	images := []ImageRecord{
		{Title: "", Name: "img1.jpg", Src: "u/img1.jpg"},
		{Title: "", Name: "img2.jpg", Src: "u/img2.jpg"},
	}

	groups := Group(images)

	require.Len(t, groups, 2)
}

func TestGroupSingleSeriesMemberIsNotASeries(t *testing.T) {
	images := []ImageRecord{
		{Title: "Heron", IsSeries: true, SeriesIndex: 1, Src: "u/heron.1.jpg"},
	}

	groups := Group(images)

	require.Len(t, groups, 1)
	assert.False(t, groups[0].IsSeries)
}

func TestGroupIDsAreSequential(t *testing.T) {
	images := []ImageRecord{
		{Title: "A", Src: "u/a.jpg"},
		{Title: "B", Src: "u/b.jpg"},
		{Title: "C", Src: "u/c.jpg"},
	}

	groups := Group(images)

	require.Len(t, groups, 3)
	for i, g := range groups {
		assert.Equal(t, i+1, g.ID)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	assert.Empty(t, Group(nil))
}
