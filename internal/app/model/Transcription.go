package model

import "time"

// Transcription is one request handled by the service, successful or not
type Transcription struct {
	ID            int64     `json:"id"`
	RequestID     string    `json:"request_id"`
	FileName      string    `json:"file_name"`
	MimeType      string    `json:"mime_type"`
	FileSize      int64     `json:"file_size"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	PromptContext string    `json:"prompt_context,omitempty"`
	Transcript    string    `json:"transcript"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	ArchiveKey    string    `json:"archive_key,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasError reports whether the transcription failed
func (t *Transcription) HasError() bool {
	return t.ErrorMessage != ""
}
