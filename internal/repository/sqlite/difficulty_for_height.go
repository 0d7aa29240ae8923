package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DifficultyForHeight returns the stored difficulty of the block at height.
func (r *Repository) DifficultyForHeight(ctx context.Context, height int64) (float64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("difficulty_for_height", err, start)
	}()

	const query = `
SELECT difficulty
FROM misc
WHERE block_height = ?`

	var difficulty float64
	err = r.db.QueryRowContext(ctx, query, height).Scan(&difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("difficulty for height %d: %w", height, ErrNotFound)
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("query difficulty for height: %w", err)
	}
	return difficulty, nil
}
