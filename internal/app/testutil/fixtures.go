package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/app/model"
)

// TestTranscriptions provides sample history for testing, oldest first
var TestTranscriptions = []model.Transcription{
	{
		RequestID:     "req-0001",
		FileName:      "standup.mp3",
		MimeType:      "audio/mpeg",
		FileSize:      1843200,
		Provider:      "gemini",
		Model:         "gemini-2.5-pro",
		PromptContext: "Daily standup",
		Transcript:    "Speaker 1 reported the deploy finished. Action: Speaker 2 to update the runbook.",
		DurationMs:    4210,
		CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		RequestID:  "req-0002",
		FileName:   "retro.m4a",
		MimeType:   "audio/mp4",
		FileSize:   5242880,
		Provider:   "gemini",
		Model:      "gemini-2.5-pro",
		Transcript: "Speaker 1 raised the flaky test suite. Speaker 2 agreed to own the fix.",
		DurationMs: 9875,
		CreatedAt:  time.Date(2024, 1, 16, 14, 45, 0, 0, time.UTC),
	},
	{
		RequestID:    "req-0003",
		FileName:     "demo.webm",
		MimeType:     "video/webm",
		FileSize:     20971520,
		Provider:     "gemini",
		ErrorMessage: "Google API Error: 429 RESOURCE_EXHAUSTED",
		DurationMs:   1200,
		CreatedAt:    time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC),
	},
	{
		RequestID:  "req-0004",
		FileName:   "interview.wav",
		MimeType:   "audio/wav",
		FileSize:   10485760,
		Provider:   "openai",
		Model:      "whisper-1",
		Transcript: "Thanks for joining us today. Tell us about your background.",
		DurationMs: 6530,
		CreatedAt:  time.Date(2024, 1, 18, 16, 20, 0, 0, time.UTC),
	},
}

// Fixtures returns a fresh copy of TestTranscriptions that callers may mutate
func Fixtures() []model.Transcription {
	out := make([]model.Transcription, len(TestTranscriptions))
	copy(out, TestTranscriptions)
	return out
}

// CreateTempMediaFile writes a small fake media file and returns its path
func CreateTempMediaFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	if content == nil {
		content = []byte("ID3\x03\x00\x00\x00\x00\x00\x00fake audio payload")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to create temp media file: %v", err)
	}
	return path
}
