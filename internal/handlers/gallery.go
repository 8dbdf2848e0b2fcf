package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/gallery"
)

// failListing is the error envelope every listing endpoint shares: the
// frontend always finds an images array, even on failure.
func (h HandlerSet) failListing(c *gin.Context, err error, msg string) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
		"images":  []gallery.ImageRecord{},
	})
}

func (h HandlerSet) ListImages(c *gin.Context) {
	page, limit := h.pageParams(c, h.cfg.Gallery.DefaultLimit)

	result, err := h.galleries.List(c.Request.Context(), h.folderParam(c), page, limit)
	if err != nil {
		h.failListing(c, err, "list images failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"images":     result.Images,
		"pagination": result.Pagination,
	})
}

func (h HandlerSet) SearchImages(c *gin.Context) {
	page, limit := h.pageParams(c, h.cfg.Gallery.DefaultLimit)
	query := queryParam(c)

	result, err := h.galleries.Search(c.Request.Context(), h.folderParam(c), query, page, limit)
	if err != nil {
		h.failListing(c, err, "search images failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"images":      result.Images,
		"pagination":  result.Pagination,
		"searchQuery": result.Query,
	})
}

func (h HandlerSet) FeaturedImages(c *gin.Context) {
	images, err := h.galleries.Featured(c.Request.Context())
	if err != nil {
		h.failListing(c, err, "featured images failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"images":     images,
		"totalCount": len(images),
	})
}

func (h HandlerSet) GroupedImages(c *gin.Context) {
	groups, err := h.galleries.Grouped(c.Request.Context())
	if err != nil {
		h.failListing(c, err, "grouped images failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"images":     groups,
		"totalCount": len(groups),
	})
}

type likeRequest struct {
	ImagePath string `json:"imagePath"`
}

func (h HandlerSet) LikePhoto(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImagePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "imagePath is required",
		})
		return
	}

	newCount, err := h.galleries.Like(c.Request.Context(), req.ImagePath)
	if err != nil {
		h.log.Error().Err(err).Str("path", req.ImagePath).Msg("like failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"newLikesCount": newCount,
	})
}
