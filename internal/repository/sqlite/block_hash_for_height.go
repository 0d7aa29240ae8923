package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BlockHashForHeight returns the hash of the block at height, or an empty
// string when the height is unknown.
func (r *Repository) BlockHashForHeight(ctx context.Context, height int64) (string, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_hash_for_height", err, start)
	}()

	const query = `
SELECT block_hash
FROM transactions
WHERE block_height = ?
LIMIT 1`

	var blockHash string
	err = r.db.QueryRowContext(ctx, query, height).Scan(&blockHash)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query block hash for height: %w", err)
	}
	return blockHash, nil
}
