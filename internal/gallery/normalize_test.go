package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct{}

func (fakeResolver) TokenURL(path, token string) string {
	return "https://cdn.test/" + path + "?token=" + token
}

func (fakeResolver) PublicURL(path string) string {
	return "https://cdn.test/" + path
}

func TestNormalizeSeriesFilename(t *testing.T) {
	norm := Normalizer{URLs: fakeResolver{}}

	rec := norm.Normalize(Object{Path: "gallery/heron.3.jpg"})

	assert.True(t, rec.IsSeries)
	assert.Equal(t, "heron", rec.Title)
	assert.Equal(t, 3, rec.SeriesIndex)
	assert.Equal(t, "heron.3.jpg", rec.Name)
	assert.Equal(t, "gallery/heron.3.jpg", rec.ID)
}

func TestNormalizeSeriesFilenameOverridesMetadata(t *testing.T) {
	norm := Normalizer{URLs: fakeResolver{}}

	rec := norm.Normalize(Object{
		Path: "gallery/heron.2.jpg",
		Metadata: map[string]string{
			"isseries":    "false",
			"title":       "Something Else",
			"seriesindex": "9",
		},
	})

	assert.True(t, rec.IsSeries)
	assert.Equal(t, "heron", rec.Title)
	assert.Equal(t, 2, rec.SeriesIndex)
}

func TestNormalizePlainFilename(t *testing.T) {
	norm := Normalizer{URLs: fakeResolver{}}

	rec := norm.Normalize(Object{Path: "gallery/sunset.jpg"})

	assert.False(t, rec.IsSeries)
	assert.Equal(t, "sunset.jpg", rec.Title)
	assert.Equal(t, 1, rec.SeriesIndex)
	assert.Equal(t, "sunset.jpg", rec.Alt)
	assert.Empty(t, rec.Description)
	assert.Empty(t, rec.ScientificName)
	assert.Empty(t, rec.Location)
	assert.Zero(t, rec.Likes)
}

func TestNormalizeExplicitMetadata(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	norm := Normalizer{URLs: fakeResolver{}}

	rec := norm.Normalize(Object{
		Path:        "gallery/sunset.jpg",
		Size:        2048,
		ContentType: "image/jpeg",
		TimeCreated: created,
		Metadata: map[string]string{
			"isseries":       "true",
			"title":          "Manila Bay Sunset",
			"seriesindex":    "4",
			"alt":            "Sun setting over the bay",
			"description":    "Golden hour",
			"scientificname": "",
			"location":       "Manila",
			"likes":          "17",
		},
	})

	assert.True(t, rec.IsSeries)
	assert.Equal(t, "Manila Bay Sunset", rec.Title)
	assert.Equal(t, 4, rec.SeriesIndex)
	assert.Equal(t, "Sun setting over the bay", rec.Alt)
	assert.Equal(t, "Golden hour", rec.Description)
	assert.Equal(t, "Manila", rec.Location)
	assert.Equal(t, int64(17), rec.Likes)
	assert.Equal(t, int64(2048), rec.Size)
	assert.Equal(t, "image/jpeg", rec.ContentType)
	assert.Equal(t, created, rec.TimeCreated)
}

func TestNormalizeSrcResolution(t *testing.T) {
	norm := Normalizer{URLs: fakeResolver{}}

	withToken := norm.Normalize(Object{
		Path:     "gallery/heron.1.jpg",
		Metadata: map[string]string{"downloadtoken": "abc123"},
	})
	require.Equal(t, "https://cdn.test/gallery/heron.1.jpg?token=abc123", withToken.Src)

	withoutToken := norm.Normalize(Object{Path: "gallery/heron.1.jpg"})
	require.Equal(t, "https://cdn.test/gallery/heron.1.jpg", withoutToken.Src)
}

func TestIsImagePath(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"gallery/heron.jpg", true},
		{"gallery/heron.JPEG", true},
		{"gallery/icon.svg", true},
		{"gallery/photo.webp", true},
		{"gallery/anim.gif", true},
		{"gallery/shot.png", true},
		{"gallery/", false},
		{"gallery/notes.txt", false},
		{"gallery/raw.cr2", false},
		{"gallery/noext", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImagePath(tt.key), "key %q", tt.key)
	}
}

func TestSeriesPatternHighIndex(t *testing.T) {
	norm := Normalizer{URLs: fakeResolver{}}

	rec := norm.Normalize(Object{Path: "gallery/migration.12.webp"})

	assert.True(t, rec.IsSeries)
	assert.Equal(t, "migration", rec.Title)
	assert.Equal(t, 12, rec.SeriesIndex)
}
