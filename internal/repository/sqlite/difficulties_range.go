package sqlite

import (
	"context"
	"fmt"
	"time"
)

// DifficultiesInRange returns per-block difficulties for heights in
// [start, end), ascending by height.
func (r *Repository) DifficultiesInRange(ctx context.Context, start, end int64) ([]float64, error) {
	began := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("difficulties_in_range", err, began)
	}()

	const query = `
SELECT difficulty
FROM misc
WHERE block_height >= ? AND block_height < ?
ORDER BY block_height`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query difficulties in range: %w", err)
	}
	defer rows.Close()

	diffs := make([]float64, 0)
	for rows.Next() {
		var difficulty float64
		if err = rows.Scan(&difficulty); err != nil {
			return nil, fmt.Errorf("scan difficulty: %w", err)
		}
		diffs = append(diffs, difficulty)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate difficulties: %w", err)
	}
	return diffs, nil
}
