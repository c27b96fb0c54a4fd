package provider

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/config"
)

type stubTranscriber struct {
	name  string
	model string
}

func (s *stubTranscriber) Name() string { return s.name }

func (s *stubTranscriber) Transcribe(ctx context.Context, request *Request) (*Result, error) {
	return &Result{Text: "stub", Provider: s.name, Model: s.model}, nil
}

func TestRegistry(t *testing.T) {
	RegisterProvider("stub-b", func(settings config.ProviderSettings, logger *zap.Logger) (Transcriber, error) {
		return &stubTranscriber{name: "stub-b", model: settings.Model}, nil
	})
	RegisterProvider("stub-a", func(settings config.ProviderSettings, logger *zap.Logger) (Transcriber, error) {
		return &stubTranscriber{name: "stub-a"}, nil
	})

	t.Run("creates registered provider", func(t *testing.T) {
		p, err := New(config.ProviderSettings{Name: "stub-b", Model: "m1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "stub-b", p.Name())

		result, err := p.Transcribe(context.Background(), &Request{FilePath: "x.mp3"})
		require.NoError(t, err)
		assert.Equal(t, "m1", result.Model)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(config.ProviderSettings{Name: "missing"}, nil)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrProviderNotFound))
		assert.Contains(t, err.Error(), `"missing"`)
	})

	t.Run("sorted listing", func(t *testing.T) {
		names := ListRegisteredProviders()
		assert.Subset(t, names, []string{"stub-a", "stub-b"})
		assert.IsNonDecreasing(t, names)
	})
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, DefaultPrompt, BuildPrompt("", ""))
	assert.Equal(t, DefaultPrompt, BuildPrompt("", "   "))
	assert.Equal(t, "Summarise.\n\nContext: weekly sync", BuildPrompt("Summarise.", " weekly sync "))
}

func TestUpstreamError(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	err := &UpstreamError{Label: "Google API Error", Err: cause}

	assert.Equal(t, "Google API Error: quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
}
