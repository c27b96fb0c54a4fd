package provider

import (
	"context"
	"strings"
)

// DefaultPrompt is sent to generative providers when no prompt is configured
const DefaultPrompt = "For each speaker, summarise what they spoke about. " +
	"Also include all actions, noting who called for the action, and who it was assigned to (if specified)"

// Transcriber turns one media file into text
type Transcriber interface {
	// Name is the registry key, also used as the metrics label
	Name() string

	Transcribe(ctx context.Context, request *Request) (*Result, error)
}

// Request describes a media file already spooled to local disk
type Request struct {
	FilePath      string
	MimeType      string
	PromptContext string
}

// Result is the provider output
type Result struct {
	Text     string
	Provider string
	Model    string
}

// UpstreamError marks a failure reported by the provider's API, as opposed to a local failure.
// Label is the user-facing prefix, e.g. "Google API Error".
type UpstreamError struct {
	Label string
	Err   error
}

func (e *UpstreamError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// BuildPrompt appends the caller's prompt context to the base prompt
func BuildPrompt(base, promptContext string) string {
	if base == "" {
		base = DefaultPrompt
	}
	promptContext = strings.TrimSpace(promptContext)
	if promptContext == "" {
		return base
	}
	return base + "\n\nContext: " + promptContext
}
