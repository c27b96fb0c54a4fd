package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"scribe/internal/api/v1/dto"
	"scribe/internal/app/converter/export"
	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

var exportContentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json; charset=utf-8",
	FormatXLSX: export.ContentType,
}

// ExportContentType returns the response content type for format
func ExportContentType(format string) string {
	if ct, ok := exportContentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	repo   repository.TranscriptionDAO
	logger *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(repo repository.TranscriptionDAO, logger *zap.Logger) *ExportServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// ExportTranscriptions exports transcriptions in the requested format
func (s *ExportServiceImpl) ExportTranscriptions(ctx context.Context, req dto.ExportRequest, writer io.Writer) error {
	limit := req.Limit
	if limit == 0 {
		limit = 10000
	}

	transcriptions, err := s.repo.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch transcriptions: %w", err)
	}
	s.logger.Debug("Exporting transcriptions", zap.String("format", req.Format), zap.Int("count", len(transcriptions)))

	switch req.Format {
	case FormatCSV:
		return s.exportCSV(transcriptions, writer)
	case FormatJSON:
		return s.exportJSON(transcriptions, writer)
	case FormatXLSX, "":
		return export.WriteExcel(writer, transcriptions)
	default:
		return fmt.Errorf("unsupported export format: %s", req.Format)
	}
}

func (s *ExportServiceImpl) exportCSV(transcriptions []model.Transcription, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{
		"ID",
		"Request ID",
		"File Name",
		"MIME Type",
		"File Size",
		"Provider",
		"Model",
		"Prompt Context",
		"Transcript",
		"Error Message",
		"Duration (ms)",
		"Created At",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range transcriptions {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.RequestID,
			t.FileName,
			t.MimeType,
			strconv.FormatInt(t.FileSize, 10),
			t.Provider,
			t.Model,
			t.PromptContext,
			t.Transcript,
			t.ErrorMessage,
			strconv.FormatInt(t.DurationMs, 10),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func (s *ExportServiceImpl) exportJSON(transcriptions []model.Transcription, writer io.Writer) error {
	items := dto.ToTranscriptionListResponse(transcriptions).Transcriptions

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}
