package gallery

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ObjectStore is the slice of the storage layer the gallery needs: a folder
// listing and a per-object metadata fetch.
type ObjectStore interface {
	ListFolder(ctx context.Context, folder string) ([]string, error)
	Stat(ctx context.Context, key string) (Object, error)
}

// Lister serves the paged gallery listings.
type Lister struct {
	store ObjectStore
	norm  Normalizer
	log   zerolog.Logger
}

func NewLister(store ObjectStore, norm Normalizer, log zerolog.Logger) *Lister {
	return &Lister{store: store, norm: norm, log: log}
}

// ListResult is the image page plus its pagination metadata.
type ListResult struct {
	Images     []ImageRecord
	Pagination Pagination
}

// SearchResult is a ListResult plus the query that produced it.
type SearchResult struct {
	ListResult
	Query string
}

// ListObjects pages through the raw objects under folder. The page window
// is cut before any metadata is fetched so the per-request fan-out stays
// bounded by limit. TotalCount therefore reflects the pre-fetch listing and
// is not reduced when individual objects fail to stat.
func (l *Lister) ListObjects(ctx context.Context, folder string, page, limit int) ([]Object, Pagination, error) {
	keys, err := l.listImageKeys(ctx, folder)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalCount := len(keys)
	lo, hi := PageBounds(page, limit, totalCount)
	objects := l.fetchObjects(ctx, keys[lo:hi])

	return objects, NewPagination(page, limit, totalCount), nil
}

// ListAllObjects stats every image under folder with no pagination.
func (l *Lister) ListAllObjects(ctx context.Context, folder string) ([]Object, error) {
	keys, err := l.listImageKeys(ctx, folder)
	if err != nil {
		return nil, err
	}
	return l.fetchObjects(ctx, keys), nil
}

// List pages through the normalized images under folder.
func (l *Lister) List(ctx context.Context, folder string, page, limit int) (ListResult, error) {
	objects, pagination, err := l.ListObjects(ctx, folder, page, limit)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Images:     l.normalizeAll(objects),
		Pagination: pagination,
	}, nil
}

// ListAll normalizes every image under folder. Used by the featured
// endpoint, the legacy grouped endpoint, and the sitemap.
func (l *Lister) ListAll(ctx context.Context, folder string) ([]ImageRecord, error) {
	objects, err := l.ListAllObjects(ctx, folder)
	if err != nil {
		return nil, err
	}
	return l.normalizeAll(objects), nil
}

// Search filters the folder's images by a case-insensitive substring match
// over title, description, alt, and name. Unlike List, every object is
// normalized before pagination because the match needs the metadata fields;
// the page counts run against the filtered set.
func (l *Lister) Search(ctx context.Context, folder, query string, page, limit int) (SearchResult, error) {
	all, err := l.ListAll(ctx, folder)
	if err != nil {
		return SearchResult{}, err
	}

	matched := all[:0:0]
	for _, rec := range all {
		if Matches(rec, query) {
			matched = append(matched, rec)
		}
	}

	lo, hi := PageBounds(page, limit, len(matched))
	return SearchResult{
		ListResult: ListResult{
			Images:     matched[lo:hi],
			Pagination: NewPagination(page, limit, len(matched)),
		},
		Query: query,
	}, nil
}

// Matches reports whether rec matches the search query. A blank query
// matches everything.
func Matches(rec ImageRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{rec.Title, rec.Description, rec.Alt, rec.Name} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (l *Lister) normalizeAll(objects []Object) []ImageRecord {
	images := make([]ImageRecord, len(objects))
	for i, obj := range objects {
		images[i] = l.norm.Normalize(obj)
	}
	return images
}

func (l *Lister) listImageKeys(ctx context.Context, folder string) ([]string, error) {
	keys, err := l.store.ListFolder(ctx, folder)
	if err != nil {
		return nil, err
	}

	filtered := keys[:0:0]
	for _, key := range keys {
		if IsImagePath(key) {
			filtered = append(filtered, key)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}

// fetchObjects stats keys with one goroutine per object. Results land in
// index slots so listing order survives the join; failed objects are logged
// and compacted out (partial-result semantics).
func (l *Lister) fetchObjects(ctx context.Context, keys []string) []Object {
	slots := make([]*Object, len(keys))

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			obj, err := l.store.Stat(ctx, key)
			if err != nil {
				ferr := &MetadataFetchError{Path: key, Err: err}
				l.log.Warn().Err(ferr).Str("path", key).Msg("dropping object from listing")
				return
			}
			slots[i] = &obj
		}(i, key)
	}
	wg.Wait()

	objects := make([]Object, 0, len(keys))
	for _, obj := range slots {
		if obj != nil {
			objects = append(objects, *obj)
		}
	}
	return objects
}
