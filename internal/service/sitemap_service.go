package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/config"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/gallery"
	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/slug"
)

const sitemapCacheKey = "sitemap:xml"

// listingBudget caps how long the sitemap build waits on the bucket before
// degrading to static pages only.
const listingBudget = 15 * time.Second

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapService renders the dynamic sitemap: the static marketing pages
// plus one URL per gallery image, slug-addressed. The rendered document is
// cached in redis for a day.
type SitemapService struct {
	lister *gallery.Lister
	cache  *redis.Client
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewSitemapService(lister *gallery.Lister, cache *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *SitemapService {
	return &SitemapService{lister: lister, cache: cache, cfg: cfg, log: log}
}

// XML returns the sitemap document, from cache when fresh.
func (s *SitemapService) XML(ctx context.Context) (string, error) {
	if cached, err := s.cache.Get(ctx, sitemapCacheKey).Result(); err == nil {
		return cached, nil
	} else if err != redis.Nil {
		s.log.Warn().Err(err).Msg("sitemap cache read failed")
	}

	doc, err := s.build(ctx)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, sitemapCacheKey, doc, s.cfg.Site.SitemapTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("sitemap cache write failed")
	}
	return doc, nil
}

// Invalidate drops the cached document so the next request rebuilds it.
func (s *SitemapService) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, sitemapCacheKey).Err()
}

func (s *SitemapService) build(ctx context.Context) (string, error) {
	base := strings.TrimSuffix(s.cfg.Site.BaseURL, "/")
	now := time.Now().UTC().Format("2006-01-02")

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range s.cfg.Site.StaticPages {
		loc := base + "/"
		if page != "" {
			loc = base + "/" + page
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        loc,
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	listCtx, cancel := context.WithTimeout(ctx, listingBudget)
	defer cancel()

	images, err := s.lister.ListAll(listCtx, s.cfg.Gallery.DefaultFolder)
	if err != nil {
		// Static pages still ship; an unreachable bucket must not take the
		// sitemap down with it.
		s.log.Warn().Err(err).Msg("sitemap image listing failed, serving static pages only")
		images = nil
	}

	for _, img := range images {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/gallery/%s", base, slug.Generate(img.Title, img.ScientificName, imageSlugID(img))),
			LastMod:    img.TimeCreated.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(out), nil
}

// imageSlugID disambiguates slugs for images that share a title: the
// filename stem is unique per object within a folder.
func imageSlugID(img gallery.ImageRecord) string {
	stem := img.Name
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		stem = stem[:idx]
	}
	return stem
}
