package services

import (
	"context"
	"io"
	"time"

	"scribe/internal/api/v1/dto"
)

// TranscribeInput is one uploaded media file plus its form fields
type TranscribeInput struct {
	RequestID     string
	FileName      string
	ContentType   string
	Content       io.Reader
	PromptContext string
}

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	Transcribe(ctx context.Context, input *TranscribeInput) (*dto.TranscribeResponse, error)
	ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	ExportTranscriptions(ctx context.Context, req dto.ExportRequest, writer io.Writer) error
}

// Recorder receives per-request measurements, typically Prometheus metrics
type Recorder interface {
	RecordSuccess(provider string, latency time.Duration)
	RecordFailure(provider string, errorType string)
	RecordUpload(size int64)
}

type nopRecorder struct{}

func (nopRecorder) RecordSuccess(string, time.Duration) {}
func (nopRecorder) RecordFailure(string, string)        {}
func (nopRecorder) RecordUpload(int64)                  {}
