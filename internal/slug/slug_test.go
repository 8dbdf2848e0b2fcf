package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name           string
		title          string
		scientificName string
		id             string
		want           string
	}{
		{
			name:           "title with scientific name and id",
			title:          "Philippine Eagle",
			scientificName: "Pithecophaga jefferyi",
			id:             "1",
			want:           "philippine-eagle-pithecophaga-jefferyi-1",
		},
		{
			name:           "emphasis markup stripped from scientific name",
			title:          "Philippine Eagle",
			scientificName: "<em>Pithecophaga jefferyi</em>",
			id:             "1",
			want:           "philippine-eagle-pithecophaga-jefferyi-1",
		},
		{
			name:  "italic tags stripped",
			title: "Heron",
			scientificName: "<i>Ardea cinerea</i>",
			want:  "heron-ardea-cinerea",
		},
		{
			name:  "plain title",
			title: "Sunset Over Manila Bay",
			want:  "sunset-over-manila-bay",
		},
		{
			name:  "special characters removed",
			title: "Eagle (juvenile) @ dawn!",
			want:  "eagle-juvenile-dawn",
		},
		{
			name:  "hyphen runs collapsed",
			title: "a - - b",
			want:  "a-b",
		},
		{
			name:  "missing title falls back to untitled",
			title: "",
			id:    "42",
			want:  "untitled-42",
		},
		{
			name:           "blank scientific name ignored",
			title:          "Kingfisher",
			scientificName: "   ",
			want:           "kingfisher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.title, tt.scientificName, tt.id))
		})
	}
}

func TestGenerateEmptyInputs(t *testing.T) {
	got := Generate("", "", "")

	require.True(t, strings.HasPrefix(got, "image-"), "unexpected slug %q", got)
	assert.GreaterOrEqual(t, len(got), 3)
	assert.True(t, IsValid(got))
}

func TestGeneratePathologicalTitle(t *testing.T) {
	// Nothing but strippable characters: falls back to "image" plus suffix.
	got := Generate("???", "", "")
	require.True(t, strings.HasPrefix(got, "image-"), "unexpected slug %q", got)
	assert.True(t, IsValid(got))
}

func TestGenerateMinimumLength(t *testing.T) {
	inputs := [][3]string{
		{"", "", ""},
		{"a", "", ""},
		{"ab", "", ""},
		{"x", "", "y"},
		{"Philippine Eagle", "Pithecophaga jefferyi", "1"},
	}
	for _, in := range inputs {
		got := Generate(in[0], in[1], in[2])
		assert.GreaterOrEqual(t, len(got), 3, "slug %q too short for input %v", got, in)
	}
}

func TestGenerateProducesValidSlugs(t *testing.T) {
	inputs := [][3]string{
		{"Philippine Eagle", "Pithecophaga jefferyi", "1"},
		{"Sunset", "", ""},
		{"Heron at Dawn", "<em>Ardea</em>", "12"},
		{"café & crème", "", ""},
	}
	for _, in := range inputs {
		got := Generate(in[0], in[1], in[2])
		assert.True(t, IsValid(got), "invalid slug %q for input %v", got, in)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("philippine-eagle-1"))
	assert.True(t, IsValid("abc"))
	assert.False(t, IsValid("ab"))
	assert.False(t, IsValid("Upper-Case"))
	assert.False(t, IsValid("-leading"))
	assert.False(t, IsValid("trailing-"))
	assert.False(t, IsValid("has space"))
	assert.False(t, IsValid("double--hyphen"))
}
