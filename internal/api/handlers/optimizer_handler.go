// internal/api/handlers/optimizer_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/filestore"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/optimizer"
)

type OptimizerHandler struct {
	service *optimizer.Service
	files   *filestore.Store
	baseURL string
}

func NewOptimizerHandler(service *optimizer.Service, files *filestore.Store, baseURL string) *OptimizerHandler {
	return &OptimizerHandler{service: service, files: files, baseURL: baseURL}
}

type optimizeRequest struct {
	Weather         string `json:"weather"`
	Temperature     any    `json:"temperature"`
	Humidity        any    `json:"humidity"`
	SafetyStockDays any    `json:"safety_stock_days"`
}

func (h *OptimizerHandler) params(c *gin.Context) (optimizer.Params, bool) {
	var req optimizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return optimizer.Params{}, false
		}
	}

	return optimizer.Params{
		Weather:         req.Weather,
		Temperature:     coerceFloat(req.Temperature),
		Humidity:        coerceFloat(req.Humidity),
		SafetyStockDays: coerceFloat(req.SafetyStockDays),
	}, true
}

func (h *OptimizerHandler) Optimize(c *gin.Context) {
	params, ok := h.params(c)
	if !ok {
		return
	}

	result, err := h.service.Optimize(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export runs the optimizer and stores the recommendations as a CSV
// download, returning the file URL alongside the summary.
func (h *OptimizerHandler) Export(c *gin.Context) {
	params, ok := h.params(c)
	if !ok {
		return
	}

	result, err := h.service.Optimize(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	content, err := filestore.ExportOrdersCSV(result.Recommendations)
	if err != nil {
		respondError(c, err)
		return
	}

	fileID, entry := h.files.Put(content, "order_recommendations", "csv")
	c.JSON(http.StatusOK, gin.H{
		"file_id":  fileID,
		"filename": entry.Filename,
		"file_url": fmt.Sprintf("%s/files/%s", h.baseURL, fileID),
		"summary":  result.Summary,
	})
}
