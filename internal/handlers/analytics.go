package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danrave1234/KuyaJPPortfolio-sub001/internal/service"
)

func (h HandlerSet) AnalyticsSummary(c *gin.Context) {
	summary := h.analytics.Summary(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

func (h HandlerSet) AnalyticsDashboard(c *gin.Context) {
	dashboard := h.analytics.Dashboard(c.Request.Context(), c.DefaultQuery("timeRange", "7d"))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dashboard,
	})
}

func (h HandlerSet) ImageStats(c *gin.Context) {
	limit := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.analytics.ImageStats(c.Request.Context(), limit),
	})
}

func (h HandlerSet) DailyStats(c *gin.Context) {
	days := 7
	if v, err := strconv.Atoi(c.Query("days")); err == nil && v >= 1 {
		days = v
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.analytics.DailyStats(c.Request.Context(), days),
	})
}

type trackRequest struct {
	Type            string `json:"type" binding:"required"`
	PageName        string `json:"pageName"`
	ImageTitle      string `json:"imageTitle"`
	InteractionType string `json:"interactionType"`
	Target          string `json:"target"`
	VisitorID       string `json:"visitorId" binding:"required"`
	SessionID       string `json:"sessionId" binding:"required"`
	Referrer        string `json:"referrer"`
}

func (h HandlerSet) TrackEvent(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	err := h.analytics.Track(c.Request.Context(), service.TrackInput{
		Type:            req.Type,
		PageName:        req.PageName,
		ImageTitle:      req.ImageTitle,
		InteractionType: req.InteractionType,
		Target:          req.Target,
		VisitorID:       req.VisitorID,
		SessionID:       req.SessionID,
		Referrer:        req.Referrer,
		UserAgent:       c.GetHeader("User-Agent"),
	})
	if errors.Is(err, service.ErrUnknownEventType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("type", req.Type).Msg("track event failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error(), "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h HandlerSet) ClearAnalytics(c *gin.Context) {
	result := h.analytics.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "analytics data cleared",
		"totalDeleted": result.TotalDeleted,
		"results":      result.Results,
	})
}
