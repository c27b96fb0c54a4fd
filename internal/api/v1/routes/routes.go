package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/handlers"
	"scribe/internal/api/v1/services"
)

// TranscribePath is the upload endpoint the web form posts to
const TranscribePath = "/transcribe/"

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	ExportService        services.ExportService

	// Accepted bearer tokens; empty accepts any token
	AuthTokens     []string
	MaxUploadBytes int64
}

// RegisterTranscribeRoute mounts POST /transcribe/ on router behind bearer auth
func RegisterTranscribeRoute(router gin.IRouter, container *ServiceContainer) {
	handler := handlers.NewTranscriptionHandler(container.TranscriptionService, container.MaxUploadBytes)
	router.POST(TranscribePath, middleware.BearerAuth(container.AuthTokens), handler.Transcribe)
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	router.Use(middleware.BearerAuth(container.AuthTokens))

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService, container.MaxUploadBytes)
	router.GET("/transcriptions", transcriptionHandler.List)

	if container.ExportService != nil {
		exportHandler := handlers.NewExportHandler(container.ExportService)
		router.GET("/export", exportHandler.Export)
	}
}
