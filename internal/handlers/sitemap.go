package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) Sitemap(c *gin.Context) {
	doc, err := h.sitemap.XML(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("sitemap build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(doc))
}
