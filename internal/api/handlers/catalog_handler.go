// internal/api/handlers/catalog_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/catalog"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Search(c *gin.Context) {
	includeSeasonal := true
	if v, err := strconv.ParseBool(c.DefaultQuery("include_seasonal", "true")); err == nil {
		includeSeasonal = v
	}

	result, err := h.service.Search(catalog.SearchParams{
		Category:        c.Query("category"),
		Keyword:         c.Query("keyword"),
		IncludeSeasonal: includeSeasonal,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
