package gallery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Object is one raw storage object plus its user metadata, decoupled from
// the storage driver so normalization stays a pure function.
type Object struct {
	Path        string
	Size        int64
	ContentType string
	TimeCreated time.Time
	// Metadata holds user metadata with lowercased keys.
	Metadata map[string]string
}

// MetadataFetchError marks a per-object metadata failure. Listing operations
// log it and drop the object instead of failing the whole request.
type MetadataFetchError struct {
	Path string
	Err  error
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("metadata fetch for %s: %v", e.Path, e.Err)
}

func (e *MetadataFetchError) Unwrap() error { return e.Err }

// seriesPattern matches numbered series filenames like "heron.3.jpg":
// a base name, a dot, the series index, and an optional extension.
var seriesPattern = regexp.MustCompile(`^(.+)\.(\d+)(\.[^.]+)?$`)

// imageExtPattern accepts the object keys the gallery serves; everything
// else in the folder (placeholders, sidecar files) is filtered out.
var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

// IsImagePath reports whether key names a servable image object.
func IsImagePath(key string) bool {
	return strings.Contains(key, ".") && imageExtPattern.MatchString(key)
}

// URLResolver turns an object path into a dereferenceable URL.
type URLResolver interface {
	// TokenURL builds a token-qualified public URL.
	TokenURL(path, token string) string
	// PublicURL builds a best-effort URL without a token. On a private
	// bucket this 403s; kept as-is because public deployments rely on it.
	PublicURL(path string) string
}

// Normalizer maps raw storage objects to ImageRecords.
type Normalizer struct {
	URLs URLResolver
}

// Normalize derives the uniform record for one object. Filename-encoded
// series information wins over explicit metadata fields.
func (n Normalizer) Normalize(obj Object) ImageRecord {
	meta := obj.Metadata
	if meta == nil {
		meta = map[string]string{}
	}

	filename := obj.Path
	if idx := strings.LastIndex(obj.Path, "/"); idx >= 0 {
		filename = obj.Path[idx+1:]
	}

	rec := ImageRecord{
		ID:             obj.Path,
		Path:           obj.Path,
		Name:           filename,
		Title:          filename,
		Alt:            filename,
		SeriesIndex:    1,
		Size:           obj.Size,
		TimeCreated:    obj.TimeCreated,
		ContentType:    obj.ContentType,
		ScientificName: meta["scientificname"],
		Location:       meta["location"],
		Description:    meta["description"],
	}

	if m := seriesPattern.FindStringSubmatch(filename); m != nil {
		rec.IsSeries = true
		rec.Title = m[1]
		if idx, err := strconv.Atoi(m[2]); err == nil {
			rec.SeriesIndex = idx
		}
	} else {
		rec.IsSeries = meta["isseries"] == "true"
		if title := meta["title"]; title != "" {
			rec.Title = title
		}
		if v := meta["seriesindex"]; v != "" {
			if idx, err := strconv.Atoi(v); err == nil {
				rec.SeriesIndex = idx
			}
		}
	}

	if alt := meta["alt"]; alt != "" {
		rec.Alt = alt
	}

	if v := meta["likes"]; v != "" {
		if likes, err := strconv.ParseInt(v, 10, 64); err == nil {
			rec.Likes = likes
		}
	}

	if token := meta["downloadtoken"]; token != "" {
		rec.Src = n.URLs.TokenURL(obj.Path, token)
	} else {
		rec.Src = n.URLs.PublicURL(obj.Path)
	}

	return rec
}
