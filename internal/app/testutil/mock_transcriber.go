package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scribe/internal/app/api/provider"
)

// MockTranscriber is a testify mock of provider.Transcriber
type MockTranscriber struct {
	mock.Mock
	ProviderName string
}

// NewMockTranscriber creates a MockTranscriber reporting the given provider name
func NewMockTranscriber(name string) *MockTranscriber {
	return &MockTranscriber{ProviderName: name}
}

// Name implements provider.Transcriber
func (m *MockTranscriber) Name() string {
	return m.ProviderName
}

// Transcribe implements provider.Transcriber
func (m *MockTranscriber) Transcribe(ctx context.Context, req *provider.Request) (*provider.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Result), args.Error(1)
}

// MockArchiver is a testify mock of archive.Archiver
type MockArchiver struct {
	mock.Mock
}

// Archive implements archive.Archiver
func (m *MockArchiver) Archive(ctx context.Context, localPath, fileName, contentType string) (string, error) {
	args := m.Called(ctx, localPath, fileName, contentType)
	return args.String(0), args.Error(1)
}
