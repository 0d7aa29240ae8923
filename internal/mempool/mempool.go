// Package mempool stores transactions received but not yet included in a
// confirmed block. The API layer only snapshots and clears it; admission is
// the peer protocol's business.
package mempool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	timestamp TEXT NOT NULL,
	address TEXT NOT NULL,
	recipient TEXT NOT NULL,
	amount TEXT NOT NULL,
	signature TEXT NOT NULL,
	public_key TEXT NOT NULL,
	operation TEXT NOT NULL DEFAULT '',
	openfield TEXT NOT NULL DEFAULT ''
)`

// Store is the pending-transaction database. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the mempool database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("mempool path is required")
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open mempool database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init mempool schema: %w", err)
	}
	return &Store{db: db}, nil
}

// TransactionsToSend snapshots the pending transactions, largest amounts
// first.
func (s *Store) TransactionsToSend(ctx context.Context) ([]model.MempoolTransaction, error) {
	const query = `
SELECT timestamp, address, recipient, amount, signature, public_key, operation, openfield
FROM transactions
ORDER BY CAST(amount AS REAL) DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query mempool transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]model.MempoolTransaction, 0)
	for rows.Next() {
		var tx model.MempoolTransaction
		if err := rows.Scan(
			&tx.Timestamp,
			&tx.Address,
			&tx.Recipient,
			&tx.Amount,
			&tx.Signature,
			&tx.PubKey,
			&tx.Operation,
			&tx.Openfield,
		); err != nil {
			return nil, fmt.Errorf("scan mempool transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mempool transactions: %w", err)
	}
	return txs, nil
}

// Clear removes every pending transaction.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear mempool: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
