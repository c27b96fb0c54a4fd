package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

func TestSQLiteDAO_Interface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*SQLiteDB)(nil)
}

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "data", "transcription.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteDB_RecordAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	for i, name := range []string{"first.mp3", "second.wav", "third.mp4"} {
		id, err := db.Record(ctx, &model.Transcription{
			RequestID:  name,
			FileName:   name,
			MimeType:   "audio/mpeg",
			FileSize:   int64(100 * (i + 1)),
			Provider:   "gemini",
			Model:      "gemini-2.5-pro",
			Transcript: "transcript of " + name,
			DurationMs: 42,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	list, err := db.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third.mp4", list[0].FileName)
	assert.Equal(t, "second.wav", list[1].FileName)
	assert.Equal(t, int64(200), list[1].FileSize)
	assert.True(t, base.Add(time.Minute).Equal(list[1].CreatedAt))

	after, err := db.ListAfter(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, int64(2), after[0].ID)
	assert.Equal(t, int64(3), after[1].ID)
}

func TestSQLiteDB_RecordsFailures(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Record(ctx, &model.Transcription{
		FileName:     "broken.mp3",
		Provider:     "openai",
		ErrorMessage: "OpenAI API Error: quota",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	list, err := db.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].HasError())
	assert.Empty(t, list[0].Transcript)
}

func TestNewSQLiteDB_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	db, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	_, err = db.Record(ctx, &model.Transcription{FileName: "kept.mp3", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept.mp3", list[0].FileName)
}
