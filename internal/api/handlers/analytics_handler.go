// internal/api/handlers/analytics_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/analytics"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) days(c *gin.Context) int {
	if v, err := strconv.Atoi(c.DefaultQuery("days", "7")); err == nil {
		return v
	}
	return 7
}

func (h *AnalyticsHandler) DailySummaries(c *gin.Context) {
	days := h.days(c)
	summaries, err := h.service.DailySummaries(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "summaries": summaries})
}

func (h *AnalyticsHandler) CategoryRanking(c *gin.Context) {
	days := h.days(c)
	ranking, err := h.service.CategoryRanking(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "ranking": ranking})
}

func (h *AnalyticsHandler) HourlyPattern(c *gin.Context) {
	pattern, err := h.service.HourlyPattern(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hourly_pattern": pattern})
}

type queryRequest struct {
	SQL string `json:"sql"`
}

// Query exposes the read-only SQL passthrough against the sales tables.
func (h *AnalyticsHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rows, err := h.service.Query(c.Request.Context(), req.SQL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"row_count": len(rows), "rows": rows})
}
