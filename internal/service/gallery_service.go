package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/config"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/gallery"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/repository"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/storage"
)

// AdminImage extends the public record with the admin-only fields: the raw
// object coordinates and metadata, and a presigned URL that works even on a
// private bucket.
type AdminImage struct {
	gallery.ImageRecord
	FullPath string            `json:"fullPath"`
	Bucket   string            `json:"bucket"`
	Metadata map[string]string `json:"metadata"`
}

// GalleryService composes the listing layer with the like counters.
type GalleryService struct {
	lister *gallery.Lister
	norm   gallery.Normalizer
	store  *storage.ObjectStore
	likes  *repository.LikeRepository
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewGalleryService(lister *gallery.Lister, norm gallery.Normalizer, store *storage.ObjectStore, likes *repository.LikeRepository, cfg *config.AppConfig, log zerolog.Logger) *GalleryService {
	return &GalleryService{
		lister: lister,
		norm:   norm,
		store:  store,
		likes:  likes,
		cfg:    cfg,
		log:    log,
	}
}

func (s *GalleryService) List(ctx context.Context, folder string, page, limit int) (gallery.ListResult, error) {
	result, err := s.lister.List(ctx, folder, page, limit)
	if err != nil {
		return gallery.ListResult{}, err
	}
	s.overlayLikes(ctx, result.Images)
	return result, nil
}

func (s *GalleryService) Search(ctx context.Context, folder, query string, page, limit int) (gallery.SearchResult, error) {
	result, err := s.lister.Search(ctx, folder, query, page, limit)
	if err != nil {
		return gallery.SearchResult{}, err
	}
	s.overlayLikes(ctx, result.Images)
	return result, nil
}

// Featured returns every image in the featured folder, unpaginated.
func (s *GalleryService) Featured(ctx context.Context) ([]gallery.ImageRecord, error) {
	images, err := s.lister.ListAll(ctx, s.cfg.Gallery.FeaturedFolder)
	if err != nil {
		return nil, err
	}
	s.overlayLikes(ctx, images)
	return images, nil
}

// Grouped serves the legacy endpoint: the whole gallery folder collapsed
// into artwork groups.
func (s *GalleryService) Grouped(ctx context.Context) ([]gallery.ArtworkGroup, error) {
	images, err := s.lister.ListAll(ctx, s.cfg.Gallery.DefaultFolder)
	if err != nil {
		return nil, err
	}
	return gallery.Group(images), nil
}

// Like adds one like to the image at imagePath and returns the new count.
// The counter is seeded from any legacy likes value in the object metadata
// the first time an image is liked, then incremented atomically.
func (s *GalleryService) Like(ctx context.Context, imagePath string) (int64, error) {
	obj, err := s.store.Stat(ctx, imagePath)
	if err != nil {
		return 0, err
	}

	seed := s.norm.Normalize(obj).Likes
	if err := s.likes.Seed(ctx, imagePath, seed); err != nil {
		s.log.Warn().Err(err).Str("path", imagePath).Msg("like counter seed failed")
	}

	return s.likes.Increment(ctx, imagePath)
}

// AdminList pages the gallery with raw metadata attached and presigned URLs.
func (s *GalleryService) AdminList(ctx context.Context, folder string, page, limit int) ([]AdminImage, gallery.Pagination, error) {
	objects, pagination, err := s.lister.ListObjects(ctx, folder, page, limit)
	if err != nil {
		return nil, gallery.Pagination{}, err
	}
	return s.adminImages(ctx, objects), pagination, nil
}

// AdminSearch filters all of the folder's images like Search, but returns
// admin-shaped results.
func (s *GalleryService) AdminSearch(ctx context.Context, folder, query string, page, limit int) ([]AdminImage, gallery.Pagination, error) {
	objects, err := s.lister.ListAllObjects(ctx, folder)
	if err != nil {
		return nil, gallery.Pagination{}, err
	}

	matched := objects[:0:0]
	for _, obj := range objects {
		if gallery.Matches(s.norm.Normalize(obj), query) {
			matched = append(matched, obj)
		}
	}

	lo, hi := gallery.PageBounds(page, limit, len(matched))
	return s.adminImages(ctx, matched[lo:hi]), gallery.NewPagination(page, limit, len(matched)), nil
}

func (s *GalleryService) adminImages(ctx context.Context, objects []gallery.Object) []AdminImage {
	images := make([]AdminImage, 0, len(objects))
	for _, obj := range objects {
		rec := s.norm.Normalize(obj)
		if signed, err := s.store.PresignedGet(ctx, obj.Path); err == nil {
			rec.Src = signed
		} else {
			s.log.Warn().Err(err).Str("path", obj.Path).Msg("presign failed, keeping public url")
		}
		images = append(images, AdminImage{
			ImageRecord: rec,
			FullPath:    obj.Path,
			Bucket:      s.store.Bucket(),
			Metadata:    obj.Metadata,
		})
	}

	recs := make([]gallery.ImageRecord, len(images))
	for i := range images {
		recs[i] = images[i].ImageRecord
	}
	s.overlayLikes(ctx, recs)
	for i := range images {
		images[i].Likes = recs[i].Likes
	}

	return images
}

// overlayLikes replaces metadata-seeded like counts with the live counters.
// A counter miss keeps the seed; a redis failure keeps all seeds and only
// logs, so listings never fail on the likes path.
func (s *GalleryService) overlayLikes(ctx context.Context, images []gallery.ImageRecord) {
	if len(images) == 0 {
		return
	}

	paths := make([]string, len(images))
	for i := range images {
		paths[i] = images[i].Path
	}

	counts, err := s.likes.Counts(ctx, paths)
	if err != nil {
		s.log.Warn().Err(err).Msg("like counters unavailable")
		return
	}
	for i := range images {
		if n, ok := counts[images[i].Path]; ok {
			images[i].Likes = n
		}
	}
}
