package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"scribe/internal/app/api/provider"
	apperrors "scribe/internal/app/errors"
)

const (
	// ProviderName is the registry key
	ProviderName = "gemini"

	DefaultModel        = "gemini-2.5-pro"
	DefaultPollInterval = 10 * time.Second

	apiErrorLabel = "Google API Error"
)

// fileStore is the subset of the Files API the transcriber needs
type fileStore interface {
	Upload(ctx context.Context, path, mimeType string) (*genai.File, error)
	Get(ctx context.Context, name string) (*genai.File, error)
	Delete(ctx context.Context, name string) error
}

// contentGenerator produces text from a prompt and an uploaded file
type contentGenerator interface {
	Generate(ctx context.Context, model string, contents []*genai.Content) (string, error)
}

// Transcriber uploads media to the Gemini Files API and asks the model to summarise it per speaker.
// The uploaded file is deleted on every path once the upload succeeded.
type Transcriber struct {
	files        fileStore
	generator    contentGenerator
	model        string
	prompt       string
	pollInterval time.Duration
	logger       *zap.Logger
}

// Config holds the Transcriber tunables; zero values fall back to the defaults
type Config struct {
	Model        string
	Prompt       string
	PollInterval time.Duration
}

func newTranscriber(files fileStore, generator contentGenerator, cfg Config, logger *zap.Logger) *Transcriber {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{
		files:        files,
		generator:    generator,
		model:        cfg.Model,
		prompt:       cfg.Prompt,
		pollInterval: cfg.PollInterval,
		logger:       logger,
	}
}

func (t *Transcriber) Name() string {
	return ProviderName
}

// Transcribe implements provider.Transcriber
func (t *Transcriber) Transcribe(ctx context.Context, request *provider.Request) (*provider.Result, error) {
	t.logger.Info("Uploading file", zap.String("path", request.FilePath), zap.String("mime_type", request.MimeType))
	uploaded, err := t.files.Upload(ctx, request.FilePath, request.MimeType)
	if err != nil {
		return nil, classify("upload file", err)
	}
	t.logger.Info("Uploaded file", zap.String("name", uploaded.Name), zap.String("uri", uploaded.URI))

	defer t.cleanup(ctx, uploaded.Name)

	active, err := t.waitUntilActive(ctx, uploaded)
	if err != nil {
		return nil, err
	}

	mimeType := active.MIMEType
	if mimeType == "" {
		mimeType = request.MimeType
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(active.URI, mimeType),
			genai.NewPartFromText(provider.BuildPrompt(t.prompt, request.PromptContext)),
		}, genai.RoleUser),
	}

	t.logger.Info("Calling Gemini", zap.String("model", t.model))
	text, err := t.generator.Generate(ctx, t.model, contents)
	if err != nil {
		return nil, classify("generate content", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyTranscript
	}

	return &provider.Result{
		Text:     text,
		Provider: ProviderName,
		Model:    t.model,
	}, nil
}

// waitUntilActive polls while the file is PROCESSING and fails on any state other than ACTIVE
func (t *Transcriber) waitUntilActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	current, err := t.files.Get(ctx, file.Name)
	if err != nil {
		return nil, classify("get file", err)
	}

	for current.State == genai.FileStateProcessing {
		t.logger.Debug("File state", zap.String("name", current.Name), zap.String("state", string(current.State)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.pollInterval):
		}

		current, err = t.files.Get(ctx, file.Name)
		if err != nil {
			return nil, classify("get file", err)
		}
	}

	if current.State != genai.FileStateActive {
		return nil, fmt.Errorf("File upload failed with state: %s", current.State)
	}
	return current, nil
}

// cleanup deletes the uploaded file even if the request context is already cancelled
func (t *Transcriber) cleanup(ctx context.Context, name string) {
	if err := t.files.Delete(context.WithoutCancel(ctx), name); err != nil {
		t.logger.Warn("Failed to delete uploaded file", zap.String("name", name), zap.Error(err))
		return
	}
	t.logger.Info("Uploaded file deleted", zap.String("name", name))
}

// classify reports Gemini API failures as upstream errors
func classify(op string, err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErr) || errors.As(err, &apiErrPtr) {
		return &provider.UpstreamError{Label: apiErrorLabel, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
