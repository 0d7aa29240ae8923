package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// BlockTransactionsByHash returns every transaction of the block with the
// given hash, in storage order. ErrNotFound when no block matches.
func (r *Repository) BlockTransactionsByHash(ctx context.Context, blockHash string) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_hash", err, start)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE block_hash = ?
ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, blockHash)
	if err != nil {
		return nil, fmt.Errorf("query block by hash: %w", err)
	}
	defer rows.Close()

	txs, err := r.scanTransactions(rows)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		err = fmt.Errorf("block %s: %w", blockHash, ErrNotFound)
		return nil, err
	}
	return txs, nil
}
