// internal/storage/postgres.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type Storage struct {
	DB *sql.DB
}

func NewStorage(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return &Storage{DB: db}, nil
}

// Ping reports whether the store is reachable. Backs /health.
func (s *Storage) Ping() error {
	return s.DB.Ping()
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// isUniqueViolation detects Postgres error 23505. Uniqueness constraints
// are the authoritative conflict signal; any preceding existence check
// is advisory only.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
