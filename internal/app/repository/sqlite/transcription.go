package sqlite

import (
	"context"

	"scribe/internal/app/repository"
)

// SQLiteDB is the default history store
type SQLiteDB struct {
	*repository.CommonDB
}

// NewSQLiteDB opens dbFilePath and makes sure the schema exists
func NewSQLiteDB(ctx context.Context, dbFilePath string) (*SQLiteDB, error) {
	db, err := GetConnection(dbFilePath)
	if err != nil {
		return nil, err
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteDB{CommonDB: repository.NewCommonDB(db, repository.DriverSQLite)}, nil
}
