package sqlite

import (
	"context"
	"fmt"
	"time"
)

// MaxBlockHeight returns the current maximum confirmed block height.
func (r *Repository) MaxBlockHeight(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_block_height", err, start)
	}()

	const query = `
SELECT COALESCE(MAX(block_height), 0)
FROM transactions`

	var height int64
	if err = r.db.QueryRowContext(ctx, query).Scan(&height); err != nil {
		return 0, fmt.Errorf("query max block height: %w", err)
	}
	return height, nil
}
