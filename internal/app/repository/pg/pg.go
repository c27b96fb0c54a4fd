package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id             BIGSERIAL PRIMARY KEY,
	request_id     TEXT        NOT NULL DEFAULT '',
	file_name      TEXT        NOT NULL,
	mime_type      TEXT        NOT NULL DEFAULT '',
	file_size      BIGINT      NOT NULL DEFAULT 0,
	provider       TEXT        NOT NULL DEFAULT '',
	model          TEXT        NOT NULL DEFAULT '',
	prompt_context TEXT        NOT NULL DEFAULT '',
	transcript     TEXT        NOT NULL DEFAULT '',
	error_message  TEXT        NOT NULL DEFAULT '',
	archive_key    TEXT        NOT NULL DEFAULT '',
	duration_ms    BIGINT      NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions (created_at);`

// GetConnection opens a Postgres pool for connectionString
func GetConnection(connectionString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// InitDB creates the schema if it does not exist yet
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}
