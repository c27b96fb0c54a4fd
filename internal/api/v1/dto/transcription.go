package dto

import (
	"time"

	"github.com/samber/lo"

	"scribe/internal/app/model"
)

// History entry statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// TranscribeResponse is the body of a successful POST /transcribe/
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// TranscriptionResponse represents a history entry in API responses
type TranscriptionResponse struct {
	ID            int64     `json:"id"`
	RequestID     string    `json:"request_id"`
	FileName      string    `json:"file_name"`
	MimeType      string    `json:"mime_type"`
	FileSize      int64     `json:"file_size"`
	Status        string    `json:"status"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model,omitempty"`
	PromptContext string    `json:"prompt_context,omitempty"`
	Transcript    string    `json:"transcript,omitempty"`
	Error         string    `json:"error,omitempty"`
	ArchiveKey    string    `json:"archive_key,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListTranscriptionsQuery represents query parameters for listing transcriptions
type ListTranscriptionsQuery struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// TranscriptionListResponse is the most recent history, newest first
type TranscriptionListResponse struct {
	Transcriptions []TranscriptionResponse `json:"transcriptions"`
	Count          int                     `json:"count"`
}

// ToTranscriptionResponse converts a model to response DTO
func ToTranscriptionResponse(t *model.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:            t.ID,
		RequestID:     t.RequestID,
		FileName:      t.FileName,
		MimeType:      t.MimeType,
		FileSize:      t.FileSize,
		Status:        DetermineStatus(t),
		Provider:      t.Provider,
		Model:         t.Model,
		PromptContext: t.PromptContext,
		Transcript:    t.Transcript,
		Error:         t.ErrorMessage,
		ArchiveKey:    t.ArchiveKey,
		DurationMs:    t.DurationMs,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTranscriptionListResponse converts a page of models
func ToTranscriptionListResponse(transcriptions []model.Transcription) *TranscriptionListResponse {
	items := lo.Map(transcriptions, func(t model.Transcription, _ int) TranscriptionResponse {
		return ToTranscriptionResponse(&t)
	})
	return &TranscriptionListResponse{Transcriptions: items, Count: len(items)}
}

// DetermineStatus determines the transcription status based on the model
func DetermineStatus(t *model.Transcription) string {
	if t.HasError() {
		return StatusFailed
	}
	return StatusCompleted
}
