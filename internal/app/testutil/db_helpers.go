package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"scribe/internal/app/model"
	"scribe/internal/app/repository"
	"scribe/internal/app/repository/sqlite"
)

// SetupTestSQLite creates a SQLite store in a per-test temporary directory
func SetupTestSQLite(t *testing.T) *sqlite.SQLiteDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "history.db")
	dao, err := sqlite.NewSQLiteDB(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Failed to create SQLite test database: %v", err)
	}
	t.Cleanup(func() { dao.Close() })
	return dao
}

// SeedTranscriptions records every transcription in order and returns their ids
func SeedTranscriptions(t *testing.T, dao repository.TranscriptionDAO, transcriptions []model.Transcription) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(transcriptions))
	for i := range transcriptions {
		id, err := dao.Record(context.Background(), &transcriptions[i])
		if err != nil {
			t.Fatalf("Failed to seed transcription %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids
}
