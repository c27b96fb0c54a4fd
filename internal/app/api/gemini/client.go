package gemini

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"scribe/internal/app/api/provider"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/config"
)

func init() {
	provider.RegisterProvider(ProviderName, createGeminiProvider)
}

// sdkClient adapts *genai.Client to fileStore and contentGenerator
type sdkClient struct {
	client *genai.Client
}

func (c *sdkClient) Upload(ctx context.Context, path, mimeType string) (*genai.File, error) {
	return c.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType})
}

func (c *sdkClient) Get(ctx context.Context, name string) (*genai.File, error) {
	return c.client.Files.Get(ctx, name, nil)
}

func (c *sdkClient) Delete(ctx context.Context, name string) error {
	_, err := c.client.Files.Delete(ctx, name, nil)
	return err
}

func (c *sdkClient) Generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	response, err := c.client.Models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", err
	}
	return response.Text(), nil
}

// NewClient creates a Gemini API client; baseURL is optional
func NewClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, apperrors.Wrap(apperrors.RequiredField("GEMINI_API_KEY"), apperrors.ErrMissingAPIKey.Error())
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	return genai.NewClient(ctx, clientCfg)
}

// NewTranscriber creates a Transcriber backed by client
func NewTranscriber(client *genai.Client, cfg Config, logger *zap.Logger) *Transcriber {
	sdk := &sdkClient{client: client}
	return newTranscriber(sdk, sdk, cfg, logger)
}

func createGeminiProvider(settings config.ProviderSettings, logger *zap.Logger) (provider.Transcriber, error) {
	client, err := NewClient(context.Background(), settings.GeminiAPIKey, settings.BaseURL)
	if err != nil {
		return nil, err
	}
	return NewTranscriber(client, Config{
		Model:        settings.Model,
		Prompt:       settings.Prompt,
		PollInterval: settings.PollInterval,
	}, logger), nil
}
