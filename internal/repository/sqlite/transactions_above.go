package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// TransactionsAbove returns every transaction with block height strictly
// greater than the given height, in storage order.
func (r *Repository) TransactionsAbove(ctx context.Context, height int64) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transactions_above", err, start)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE block_height > ?
ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, height)
	if err != nil {
		return nil, fmt.Errorf("query transactions above height: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}
