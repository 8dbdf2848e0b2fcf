// Package slug builds the URL identifiers used by the statically exported
// gallery pages and the sitemap.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emphasisTags  = regexp.MustCompile(`(?i)</?(?:em|i)>`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^\w-]`)
	multiHyphen   = regexp.MustCompile(`-{2,}`)
	validSlug     = regexp.MustCompile(`^[a-z0-9_]+(?:-[a-z0-9_]+)*$`)
)

// Generate maps (title, scientific name, identifier) to a URL-safe slug.
// Scientific names arrive wrapped in <em>/<i> markup from the CMS fields;
// the tags are stripped before joining.
//
// The output is deterministic except for pathological near-empty titles,
// where a base-36 epoch suffix keeps short slugs from colliding with each
// other and with generic route segments.
func Generate(title, scientificName, id string) string {
	base := title
	// An untitled image still gets a readable slug when a scientific name
	// or id can carry it; with nothing at all to work from, fall through to
	// the padded "image" fallback below.
	if base == "" && (strings.TrimSpace(scientificName) != "" || id != "") {
		base = "untitled"
	}

	s := base
	if strings.TrimSpace(scientificName) != "" {
		s += "-" + emphasisTags.ReplaceAllString(scientificName, "")
	}
	if id != "" {
		s += "-" + id
	}

	s = strings.ToLower(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	pad := false
	if s == "" {
		s = "image"
		pad = true
	}
	if len(s) < 3 {
		pad = true
	}
	if pad {
		s += "-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
	}

	return s
}

// IsValid reports whether s looks like something Generate could have produced.
func IsValid(s string) bool {
	return len(s) >= 3 && validSlug.MatchString(s)
}
