// internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/inventory"
)

type InventoryHandler struct {
	service *inventory.Service
}

func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) CheckExpiration(c *gin.Context) {
	params := inventory.CheckExpirationParams{
		Category: c.Query("category"),
		Urgency:  c.Query("urgency"),
	}
	if raw := strings.TrimSpace(c.Query("hours_threshold")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.HoursThreshold = &v
		}
	}

	result, err := h.service.CheckExpiration(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// addStockRequest tolerates loosely typed payloads: quantity and
// expires_in_hours may arrive as numbers or numeric strings.
type addStockRequest struct {
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_name"`
	Category       string `json:"category"`
	Quantity       any    `json:"quantity"`
	ExpiresInHours any    `json:"expires_in_hours"`
}

func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params := inventory.AddStockParams{
		ItemID:   req.ItemID,
		ItemName: req.ItemName,
		Category: req.Category,
		Quantity: coerceInt(req.Quantity),
	}
	if v := coerceFloat(req.ExpiresInHours); v != nil {
		params.ExpiresInHours = v
	}

	result, err := h.service.AddStock(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type removeStockRequest struct {
	ItemID   string `json:"item_id"`
	Quantity any    `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *InventoryHandler) RemoveStock(c *gin.Context) {
	var req removeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.RemoveStock(c.Request.Context(), inventory.RemoveStockParams{
		ItemID:   req.ItemID,
		Quantity: coerceInt(req.Quantity),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	result, err := h.service.LowStockAlert(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) Reorder(c *gin.Context) {
	result, err := h.service.OrderRecommendation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	days := 0
	if v, err := strconv.Atoi(c.DefaultQuery("days", "7")); err == nil {
		days = v
	}

	result, err := h.service.MovementHistory(c.Request.Context(), days, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// coerceInt accepts JSON numbers and numeric strings. Anything else
// comes back as zero and fails the service-side validation.
func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// coerceFloat accepts JSON numbers and numeric strings, nil otherwise.
func coerceFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &f
		}
	}
	return nil
}
