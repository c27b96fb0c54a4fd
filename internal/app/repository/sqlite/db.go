package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id     TEXT    NOT NULL DEFAULT '',
	file_name      TEXT    NOT NULL,
	mime_type      TEXT    NOT NULL DEFAULT '',
	file_size      INTEGER NOT NULL DEFAULT 0,
	provider       TEXT    NOT NULL DEFAULT '',
	model          TEXT    NOT NULL DEFAULT '',
	prompt_context TEXT    NOT NULL DEFAULT '',
	transcript     TEXT    NOT NULL DEFAULT '',
	error_message  TEXT    NOT NULL DEFAULT '',
	archive_key    TEXT    NOT NULL DEFAULT '',
	duration_ms    INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions (created_at);`

// GetConnection opens the database file at dbPath, creating its directory when needed
func GetConnection(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite3 allows a single writer
	db.SetMaxOpenConns(1)
	return db, nil
}

// InitDB creates the schema if it does not exist yet
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}
