package repository

import (
	"context"

	"scribe/internal/app/model"
)

// DefaultListLimit applies when a caller passes a non-positive limit
const DefaultListLimit = 50

type TranscriptionDAO interface {
	Close() error

	// Record stores t and returns its new id
	Record(ctx context.Context, t *model.Transcription) (int64, error)

	// List returns the most recent transcriptions, newest first
	List(ctx context.Context, limit int) ([]model.Transcription, error)

	// ListAfter returns transcriptions with id > afterID in ascending id order
	ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Transcription, error)
}
