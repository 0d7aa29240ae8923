package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// BlockTransactionsByHeight returns every transaction of the block at the
// given height, in storage order. ErrNotFound when no block matches.
func (r *Repository) BlockTransactionsByHeight(ctx context.Context, height int64) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_height", err, start)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE block_height = ?
ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query block by height: %w", err)
	}
	defer rows.Close()

	txs, err := r.scanTransactions(rows)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		err = fmt.Errorf("block %d: %w", height, ErrNotFound)
		return nil, err
	}
	return txs, nil
}
