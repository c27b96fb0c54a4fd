package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/samber/lo"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
)

// Driver names understood by CommonDB
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var insertColumns = []string{
	"request_id", "file_name", "mime_type", "file_size", "provider", "model",
	"prompt_context", "transcript", "error_message", "archive_key", "duration_ms", "created_at",
}

var selectColumns = "id, " + strings.Join(insertColumns, ", ")

// CommonDB provides shared database functionality
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case DriverPostgres:
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

// Record inserts t and returns the generated id
func (c *CommonDB) Record(ctx context.Context, t *model.Transcription) (int64, error) {
	params := lo.Map(insertColumns, func(_ string, i int) string {
		return c.placeholders(i + 1)
	})

	query := fmt.Sprintf(
		"INSERT INTO transcriptions (%s) VALUES (%s)",
		strings.Join(insertColumns, ", "),
		strings.Join(params, ", "),
	)
	args := []any{
		t.RequestID, t.FileName, t.MimeType, t.FileSize, t.Provider, t.Model,
		t.PromptContext, t.Transcript, t.ErrorMessage, t.ArchiveKey, t.DurationMs, t.CreatedAt,
	}

	if c.driverName == DriverPostgres {
		var id int64
		if err := c.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrInsertFailed.Error())
		}
		return id, nil
	}

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrInsertFailed.Error())
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrInsertFailed.Error())
	}
	return id, nil
}

// List returns the most recent transcriptions, newest first
func (c *CommonDB) List(ctx context.Context, limit int) ([]model.Transcription, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query := fmt.Sprintf(
		"SELECT %s FROM transcriptions ORDER BY id DESC LIMIT %s",
		selectColumns, c.placeholders(1),
	)
	return c.query(ctx, query, limit)
}

// ListAfter returns transcriptions with id > afterID in ascending id order
func (c *CommonDB) ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Transcription, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query := fmt.Sprintf(
		"SELECT %s FROM transcriptions WHERE id > %s ORDER BY id LIMIT %s",
		selectColumns, c.placeholders(1), c.placeholders(2),
	)
	return c.query(ctx, query, afterID, limit)
}

func (c *CommonDB) query(ctx context.Context, query string, args ...any) ([]model.Transcription, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrQueryFailed.Error())
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		err := rows.Scan(
			&t.ID,
			&t.RequestID,
			&t.FileName,
			&t.MimeType,
			&t.FileSize,
			&t.Provider,
			&t.Model,
			&t.PromptContext,
			&t.Transcript,
			&t.ErrorMessage,
			&t.ArchiveKey,
			&t.DurationMs,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrScanFailed.Error())
		}
		transcriptions = append(transcriptions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrQueryFailed.Error())
	}

	return transcriptions, nil
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (c *CommonDB) DB() *sql.DB {
	return c.db
}
