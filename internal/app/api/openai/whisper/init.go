package whisper

import (
	"go.uber.org/zap"

	"scribe/internal/app/api/openai"
	"scribe/internal/app/api/provider"
	"scribe/internal/config"
)

func init() {
	provider.RegisterProvider(ProviderName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from settings
func createOpenAIProvider(settings config.ProviderSettings, logger *zap.Logger) (provider.Transcriber, error) {
	client, err := openai.NewClient(settings.OpenAIAPIKey, settings.BaseURL)
	if err != nil {
		return nil, err
	}
	return NewRemoteTranscriber(client, settings.Model, logger), nil
}
