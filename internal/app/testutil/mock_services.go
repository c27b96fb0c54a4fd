package testutil

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscriptionService *MockTranscriptionService
	ExportService        *MockExportService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscriptionService: NewMockTranscriptionService(t),
		ExportService:        NewMockExportService(t),
	}
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, input *services.TranscribeInput) (*dto.TranscribeResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscribeResponse), args.Error(1)
}

func (m *MockTranscriptionService) ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.TranscriptionListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptionListResponse), args.Error(1)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

func NewMockExportService(t *testing.T) *MockExportService {
	m := &MockExportService{}
	m.Test(t)
	return m
}

func (m *MockExportService) ExportTranscriptions(ctx context.Context, req dto.ExportRequest, writer io.Writer) error {
	args := m.Called(ctx, req, writer)
	return args.Error(0)
}

// MockRecorder captures services.Recorder calls
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordSuccess(provider string, latency time.Duration) {
	m.Called(provider, latency)
}

func (m *MockRecorder) RecordFailure(provider string, errorType string) {
	m.Called(provider, errorType)
}

func (m *MockRecorder) RecordUpload(size int64) {
	m.Called(size)
}
