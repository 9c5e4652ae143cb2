package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/withgossing/bank-app/internal/config"
	"github.com/withgossing/bank-app/internal/domain"
)

type PostgresStorage struct {
	db  *sql.DB
	bob bob.DB
}

var _ Storage = (*PostgresStorage)(nil)

// ConnectionString builds the lib/pq DSN for env.
func ConnectionString(env *config.Config) string {
	return "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
}

func NewPostgresStorage(env *config.Config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", ConnectionString(env))
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return NewPostgresStorageFromDB(db), nil
}

func NewPostgresStorageFromDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		bob: bob.NewDB(db),
	}
}

func (s *PostgresStorage) DB() *sql.DB {
	return s.db
}

func (s *PostgresStorage) Reader() *Reader {
	return NewReader(s.bob)
}

func (s *PostgresStorage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bob.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageError("storage.Write", err)
	}
	return newBobWriter(tx), nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.NewStorageError("storage.Ping", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
