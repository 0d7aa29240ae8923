package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// TransactionsWithOpenfieldPrefix returns transactions in (since, upper]
// whose openfield starts with prefix. The prefix travels as a bound LIKE
// parameter with a single trailing wildcard; it is never spliced into the
// statement text.
func (r *Repository) TransactionsWithOpenfieldPrefix(ctx context.Context, since, upper int64, prefix string) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("openfield_since", err, start)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE block_height > ? AND block_height <= ? AND openfield LIKE ?
ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, since, upper, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("query transactions by openfield prefix: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}
