package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scribe/internal/api/errors"
	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// Multipart field names of POST /transcribe/
const (
	FileField          = "file"
	PromptContextField = "prompt_context"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service        services.TranscriptionService
	maxUploadBytes int64
}

// NewTranscriptionHandler creates a new transcription handler.
// A non-positive maxUploadBytes disables the body limit.
func NewTranscriptionHandler(service services.TranscriptionService, maxUploadBytes int64) *TranscriptionHandler {
	return &TranscriptionHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Transcribe handles POST /transcribe/
//
// Accepts multipart/form-data with a required "file" part and an optional
// "prompt_context" field, and answers {"transcript": "..."}.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile(FileField)
	if err != nil {
		middleware.HandleError(c, formError(err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("An unexpected error occurred: "+err.Error()))
		return
	}
	defer file.Close()

	response, err := h.service.Transcribe(c.Request.Context(), &services.TranscribeInput{
		RequestID:     c.GetString(middleware.RequestIDKey),
		FileName:      fileHeader.Filename,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		Content:       file,
		PromptContext: c.PostForm(PromptContextField),
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcriptions
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListTranscriptions(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func formError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return errors.NewTooLargeError("Uploaded file is too large")
	}
	return errors.NewValidationError("Invalid form data", map[string]string{
		FileField: "field required",
	})
}
