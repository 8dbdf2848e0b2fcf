package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/config"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/gallery"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/middleware"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/repository"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/service"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/storage"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	db        *pgxpool.Pool
	cache     *redis.Client
	galleries *service.GalleryService
	analytics *service.AnalyticsService
	sitemap   *service.SitemapService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	norm := gallery.Normalizer{URLs: store}
	lister := gallery.NewLister(store, norm, log)
	likes := repository.NewLikeRepository(cache)
	events := repository.NewEventRepository(db)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		db:        db,
		cache:     cache,
		galleries: service.NewGalleryService(lister, norm, store, likes, cfg, log),
		analytics: service.NewAnalyticsService(events, log),
		sitemap:   service.NewSitemapService(lister, cache, cfg, log),
	}
}

// Analytics exposes the analytics service for the rollup scheduler.
func (h HandlerSet) Analytics() *service.AnalyticsService {
	return h.analytics
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.GET("/sitemap.xml", h.Sitemap)

	api := engine.Group("/api")
	api.GET("/healthz", h.Health)

	v1 := api.Group("/v1")
	{
		pub := v1.Group("/gallery")
		pub.GET("/images", h.ListImages)
		pub.GET("/search", h.SearchImages)
		pub.GET("/featured", h.FeaturedImages)
		pub.GET("/artworks", h.GroupedImages)
		pub.POST("/like", h.LikePhoto)

		v1.POST("/analytics/track", h.TrackEvent)
		v1.POST("/admin/login", h.AdminLogin)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(h.cfg))
		admin.GET("/images", h.AdminListImages)
		admin.GET("/images/search", h.AdminSearchImages)

		analytics := v1.Group("/analytics")
		analytics.Use(middleware.AdminAuth(h.cfg))
		analytics.GET("/summary", h.AnalyticsSummary)
		analytics.GET("/dashboard", h.AnalyticsDashboard)
		analytics.GET("/images", h.ImageStats)
		analytics.GET("/daily", h.DailyStats)
		analytics.POST("/clear", h.ClearAnalytics)
	}
}

// pageParams reads page and limit with clamped defaults.
func (h HandlerSet) pageParams(c *gin.Context, defaultLimit int) (int, int) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		page = v
	}

	limit := defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 1 {
		limit = v
	}
	if limit > h.cfg.Gallery.MaxLimit {
		limit = h.cfg.Gallery.MaxLimit
	}

	return page, limit
}

func (h HandlerSet) folderParam(c *gin.Context) string {
	if folder := c.Query("folder"); folder != "" {
		return folder
	}
	return h.cfg.Gallery.DefaultFolder
}

// queryParam accepts both spellings the frontend has used over time.
func queryParam(c *gin.Context) string {
	if q := c.Query("q"); q != "" {
		return q
	}
	return c.Query("query")
}
