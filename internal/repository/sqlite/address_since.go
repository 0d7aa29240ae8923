package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// AddressTransactionsBetween returns transactions in (since, upper] where
// the address is sender or recipient, ascending by height.
func (r *Repository) AddressTransactionsBetween(ctx context.Context, addr string, since, upper int64) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("address_since", err, start)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE block_height > ? AND block_height <= ? AND (address = ? OR recipient = ?)
ORDER BY block_height ASC`

	rows, err := r.db.QueryContext(ctx, query, since, upper, addr, addr)
	if err != nil {
		return nil, fmt.Errorf("query address transactions: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}
