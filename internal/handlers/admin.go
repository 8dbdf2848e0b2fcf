package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/security"
)

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "password is required"})
		return
	}

	ok, err := security.VerifyPassword(req.Password, h.cfg.Admin.PasswordHash)
	if err != nil {
		h.log.Error().Err(err).Msg("password verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid password"})
		return
	}

	token, err := security.GenerateAdminToken(h.cfg.Admin.JWTSecret, h.cfg.Admin.TokenTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

func (h HandlerSet) AdminListImages(c *gin.Context) {
	page, limit := h.pageParams(c, h.cfg.Gallery.AdminLimit)

	images, pagination, err := h.galleries.AdminList(c.Request.Context(), h.folderParam(c), page, limit)
	if err != nil {
		h.failListing(c, err, "admin list images failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"images":     images,
		"pagination": pagination,
	})
}

func (h HandlerSet) AdminSearchImages(c *gin.Context) {
	page, limit := h.pageParams(c, h.cfg.Gallery.AdminLimit)
	query := queryParam(c)

	images, pagination, err := h.galleries.AdminSearch(c.Request.Context(), h.folderParam(c), query, page, limit)
	if err != nil {
		h.failListing(c, err, "admin search images failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"images":      images,
		"pagination":  pagination,
		"searchQuery": query,
	})
}
