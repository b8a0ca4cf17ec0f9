package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/service"
	"github.com/jengzang/fox-tracks-go/pkg/response"
)

// ImportHandler handles CSV uploads
type ImportHandler struct {
	importService *service.ImportService
	maxBytes      int64
}

// NewImportHandler creates a new import handler that accepts bodies up to maxBytes
func NewImportHandler(importService *service.ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxBytes:      maxBytes,
	}
}

// CreateImport handles POST /api/v1/imports. The body is the raw CSV export;
// the "source" query parameter names it.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	source := c.DefaultQuery("source", "upload.csv")
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	imp, err := h.importService.ImportCSV(c.Request.Context(), source, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.Created(c, imp)
}

// ListImports handles GET /api/v1/imports
func (h *ImportHandler) ListImports(c *gin.Context) {
	imports, err := h.importService.ListImports(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":  imports,
		"count": len(imports),
	})
}
