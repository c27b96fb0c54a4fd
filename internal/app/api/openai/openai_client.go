package openai

import (
	"github.com/sashabaranov/go-openai"

	apperrors "scribe/internal/app/errors"
)

// NewClient builds an OpenAI client; baseURL is optional and must include the /v1 suffix
func NewClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, apperrors.Wrap(apperrors.RequiredField("OPENAI_API_KEY"), apperrors.ErrMissingAPIKey.Error())
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config), nil
}
