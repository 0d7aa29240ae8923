package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// AddressRange returns up to limit transactions involving the address,
// starting at the given block height, ascending.
func (r *Repository) AddressRange(ctx context.Context, addr string, startHeight, limit int64) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("address_range", err, start)
	}()

	query := `
SELECT ` + txColumns + `
FROM transactions
WHERE (address = ? OR recipient = ?) AND block_height >= ?
ORDER BY block_height, rowid
LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, addr, addr, startHeight, limit)
	if err != nil {
		return nil, fmt.Errorf("query address range: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}
