// Package sqlite implements the ledger store queries against the node's
// local ledger database. Every statement is fixed and hand written; nothing
// in this package assembles query text from caller input.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound marks point lookups that matched nothing.
var ErrNotFound = errors.New("not found")

type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// Repository reads the ledger database. Safe for concurrent use; the
// underlying pool serializes access to the sqlite file.
type Repository struct {
	db      *sql.DB
	legacy  bool
	metrics Metrics
}

// NewRepository opens the ledger database at path. With legacy set, money
// columns are decoded as fixed-point decimal strings instead of integers.
func NewRepository(path string, legacy bool, metrics Metrics) (*Repository, error) {
	if path == "" {
		return nil, errors.New("ledger path is required")
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	return &Repository{db: db, legacy: legacy, metrics: metrics}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
