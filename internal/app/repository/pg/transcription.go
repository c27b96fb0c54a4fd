package pg

import (
	"context"
	"database/sql"

	"scribe/internal/app/repository"
)

type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB connects and makes sure the schema exists
func NewPostgresDB(ctx context.Context, connectionString string) (*PostgresDB, error) {
	db, err := GetConnection(connectionString)
	if err != nil {
		return nil, err
	}
	return newPostgresDB(ctx, db)
}

func newPostgresDB(ctx context.Context, db *sql.DB) (*PostgresDB, error) {
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, repository.DriverPostgres)}, nil
}
