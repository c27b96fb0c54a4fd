package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"scribe/internal/api/errors"
	"scribe/internal/api/v1/dto"
	"scribe/internal/app/api/provider"
	"scribe/internal/app/model"
	"scribe/internal/app/repository"
	"scribe/internal/app/storage/archive"
)

// DetailInvalidFileType is returned for uploads that are neither audio nor video
const DetailInvalidFileType = "Invalid file type. Please upload an audio or video file."

// Failure labels used for metrics
const (
	errorTypeUpstream = "upstream"
	errorTypeCanceled = "canceled"
	errorTypeInternal = "internal"
)

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	transcriber provider.Transcriber
	repository  repository.TranscriptionDAO
	archiver    archive.Archiver
	recorder    Recorder
	logger      *zap.Logger
	tempDir     string
	now         func() time.Time
}

// Option configures a TranscriptionServiceImpl
type Option func(*TranscriptionServiceImpl)

// WithArchiver keeps a copy of every accepted upload
func WithArchiver(archiver archive.Archiver) Option {
	return func(s *TranscriptionServiceImpl) {
		s.archiver = archiver
	}
}

// WithRecorder reports measurements, typically to metrics
func WithRecorder(recorder Recorder) Option {
	return func(s *TranscriptionServiceImpl) {
		s.recorder = recorder
	}
}

// WithTempDir sets where uploads are spooled; defaults to os.TempDir
func WithTempDir(dir string) Option {
	return func(s *TranscriptionServiceImpl) {
		s.tempDir = dir
	}
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	transcriber provider.Transcriber,
	repository repository.TranscriptionDAO,
	logger *zap.Logger,
	opts ...Option,
) *TranscriptionServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TranscriptionServiceImpl{
		transcriber: transcriber,
		repository:  repository,
		archiver:    archive.NopArchiver{},
		recorder:    nopRecorder{},
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsMediaType reports whether contentType is an audio or video type
func IsMediaType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/")
}

// Transcribe spools the upload to a temporary file, hands it to the provider and records the outcome
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, input *TranscribeInput) (*dto.TranscribeResponse, error) {
	if !IsMediaType(input.ContentType) {
		return nil, errors.NewBadRequestError(DetailInvalidFileType)
	}

	logger := s.logger.With(zap.String("request_id", input.RequestID), zap.String("file", input.FileName))

	tmpPath, size, err := s.spool(input)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.NewTooLargeError("Uploaded file is too large")
		}
		logger.Error("Failed to spool upload", zap.Error(err))
		return nil, errors.NewInternalError("An unexpected error occurred: " + err.Error())
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			logger.Warn("Failed to remove temporary file", zap.String("path", tmpPath), zap.Error(err))
			return
		}
		logger.Debug("Temporary file removed", zap.String("path", tmpPath))
	}()
	s.recorder.RecordUpload(size)

	record := &model.Transcription{
		RequestID:     input.RequestID,
		FileName:      input.FileName,
		MimeType:      input.ContentType,
		FileSize:      size,
		Provider:      s.transcriber.Name(),
		PromptContext: input.PromptContext,
		CreatedAt:     s.now(),
	}

	key, err := s.archiver.Archive(ctx, tmpPath, input.FileName, input.ContentType)
	if err != nil {
		logger.Warn("Failed to archive upload", zap.Error(err))
	}
	record.ArchiveKey = key

	start := time.Now()
	result, err := s.transcriber.Transcribe(ctx, &provider.Request{
		FilePath:      tmpPath,
		MimeType:      input.ContentType,
		PromptContext: input.PromptContext,
	})
	latency := time.Since(start)
	record.DurationMs = latency.Milliseconds()

	if err != nil {
		apiErr, errorType := classify(err)
		logger.Error("Transcription failed", zap.String("error_type", errorType), zap.Error(err))
		s.recorder.RecordFailure(record.Provider, errorType)

		record.ErrorMessage = apiErr.Detail
		s.save(ctx, logger, record)
		return nil, apiErr
	}

	record.Model = result.Model
	record.Transcript = result.Text
	s.recorder.RecordSuccess(record.Provider, latency)
	s.save(ctx, logger, record)

	logger.Info("Transcription completed",
		zap.String("provider", record.Provider),
		zap.Int64("size", size),
		zap.Duration("latency", latency),
	)
	return &dto.TranscribeResponse{Transcript: result.Text}, nil
}

// ListTranscriptions returns the most recent history entries
func (s *TranscriptionServiceImpl) ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error) {
	transcriptions, err := s.repository.List(ctx, query.Limit)
	if err != nil {
		s.logger.Error("Failed to list transcriptions", zap.Error(err))
		return nil, errors.NewInternalError("Failed to list transcriptions")
	}
	return dto.ToTranscriptionListResponse(transcriptions), nil
}

func (s *TranscriptionServiceImpl) spool(input *TranscribeInput) (string, int64, error) {
	tmp, err := os.CreateTemp(s.tempDir, "scribe-upload-*"+strings.ToLower(filepath.Ext(input.FileName)))
	if err != nil {
		return "", 0, fmt.Errorf("create temporary file: %w", err)
	}

	size, copyErr := io.Copy(tmp, input.Content)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return "", 0, fmt.Errorf("write temporary file: %w", copyErr)
		}
		return "", 0, fmt.Errorf("close temporary file: %w", closeErr)
	}
	return tmp.Name(), size, nil
}

// save records history without failing the request; the caller already has its answer
func (s *TranscriptionServiceImpl) save(ctx context.Context, logger *zap.Logger, record *model.Transcription) {
	id, err := s.repository.Record(context.WithoutCancel(ctx), record)
	if err != nil {
		logger.Error("Failed to record transcription", zap.Error(err))
		return
	}
	record.ID = id
}

func classify(err error) (*errors.APIError, string) {
	var upstream *provider.UpstreamError
	switch {
	case stderrors.As(err, &upstream):
		return errors.NewUpstreamError(upstream.Error()), errorTypeUpstream
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewServiceUnavailableError("An unexpected error occurred: " + err.Error()), errorTypeCanceled
	default:
		return errors.NewInternalError("An unexpected error occurred: " + err.Error()), errorTypeInternal
	}
}
