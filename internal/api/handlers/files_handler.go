// internal/api/handlers/files_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/filestore"
)

type FilesHandler struct {
	store   *filestore.Store
	baseURL string
}

func NewFilesHandler(store *filestore.Store, baseURL string) *FilesHandler {
	return &FilesHandler{store: store, baseURL: baseURL}
}

type writeFileRequest struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
}

// Write stores caller-provided content and hands back a download URL.
func (h *FilesHandler) Write(c *gin.Context) {
	var req writeFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	fileID, entry := h.store.Put([]byte(req.Content), req.Filename, req.FileType)
	c.JSON(http.StatusOK, gin.H{
		"file_id":   fileID,
		"filename":  entry.Filename,
		"mime_type": entry.MIMEType,
		"file_url":  fmt.Sprintf("%s/files/%s", h.baseURL, fileID),
	})
}

// Download serves a stored file, or 404s once it has expired.
func (h *FilesHandler) Download(c *gin.Context) {
	fileID := c.Param("file_id")
	entry, ok := h.store.Get(fileID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ファイルが見つかりません（期限切れの可能性があります）"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.Filename))
	c.Data(http.StatusOK, entry.MIMEType, entry.Content)
}
