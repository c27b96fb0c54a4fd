package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/internal/api/errors"
	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// ExportHandler handles export-related HTTP requests
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{
		service: service,
	}
}

// Export handles GET /api/v1/export?format=xlsx|csv|json&limit=N
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := middleware.ValidateQuery(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Buffer so a failure can still be answered with a JSON error
	var buf bytes.Buffer
	if err := h.service.ExportTranscriptions(c.Request.Context(), req, &buf); err != nil {
		middleware.HandleError(c, errors.NewInternalError(err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transcriptions.%s\"", req.Format))
	c.Data(http.StatusOK, services.ExportContentType(req.Format), buf.Bytes())
}
