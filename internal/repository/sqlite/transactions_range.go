package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// TransactionsInRange returns the transactions of blocks in [start, end), in
// storage order.
func (r *Repository) TransactionsInRange(ctx context.Context, start, end int64) ([]model.Transaction, error) {
	began := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transactions_in_range", err, began)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE block_height >= ? AND block_height < ?
ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query transactions in range: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}
