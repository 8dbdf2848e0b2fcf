package gallery

import "time"

// ImageRecord is the normalized view of one object in the portfolio bucket.
// It is rebuilt from the live listing on every request; the bucket is the
// source of truth and nothing here is persisted.
type ImageRecord struct {
	ID             string    `json:"id"`
	Path           string    `json:"path"`
	Name           string    `json:"name"`
	Src            string    `json:"src"`
	Title          string    `json:"title"`
	Alt            string    `json:"alt"`
	Description    string    `json:"description"`
	ScientificName string    `json:"scientificName"`
	Location       string    `json:"location"`
	IsSeries       bool      `json:"isSeries"`
	SeriesIndex    int       `json:"seriesIndex"`
	Size           int64     `json:"size"`
	TimeCreated    time.Time `json:"timeCreated"`
	ContentType    string    `json:"contentType"`
	Likes          int64     `json:"likes"`
}

// ArtworkGroup is the derived shape served by the legacy all-in-one gallery
// endpoint: series members collapse into one entry, standalone images stay
// as single-image groups.
type ArtworkGroup struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Alt         string   `json:"alt"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	IsSeries    bool     `json:"isSeries"`
}

// Pagination is the page metadata block attached to every list response.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"totalCount"`
	HasMore    bool `json:"hasMore"`
	TotalPages int  `json:"totalPages"`
}

// NewPagination computes the metadata for a 1-based page over totalCount items.
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		HasMore:    page*limit < totalCount,
		TotalPages: totalPages,
	}
}

// PageBounds returns the [lo, hi) slice bounds for a 1-based page, clamped
// to n items.
func PageBounds(page, limit, n int) (int, int) {
	lo := (page - 1) * limit
	if lo > n {
		lo = n
	}
	hi := lo + limit
	if hi > n {
		hi = n
	}
	return lo, hi
}
