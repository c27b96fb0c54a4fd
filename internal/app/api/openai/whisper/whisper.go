package whisper

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"scribe/internal/app/api/provider"
)

// ProviderName is the registry key
const ProviderName = "openai"

// audioClient is the part of *openai.Client used here
type audioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
// The prompt context is passed as the Whisper prompt, which biases spelling and vocabulary.
type RemoteTranscriber struct {
	client audioClient
	model  string
	logger *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client audioClient, model string, logger *zap.Logger) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTranscriber{client: client, model: model, logger: logger}
}

func (rt *RemoteTranscriber) Name() string {
	return ProviderName
}

// Transcribe uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, request *provider.Request) (*provider.Result, error) {
	rt.logger.Debug("Creating transcription", zap.String("file", request.FilePath), zap.String("model", rt.model))

	resp, err := rt.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    rt.model,
		FilePath: request.FilePath,
		Prompt:   request.PromptContext,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &provider.UpstreamError{Label: "OpenAI API Error", Err: err}
		}
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	return &provider.Result{
		Text:     resp.Text,
		Provider: ProviderName,
		Model:    rt.model,
	}, nil
}
