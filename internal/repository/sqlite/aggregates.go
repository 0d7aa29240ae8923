package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Aggregates are summed in SQL and carried as float64: legacy databases sum
// decimal text (already whole-coin units), v2 databases sum native-unit
// integers that the caller divides down.

// CreditSum returns sum(amount + reward) received by addr up to and
// including maxHeight.
func (r *Repository) CreditSum(ctx context.Context, addr string, maxHeight int64) (float64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("credit_sum", err, start)
	}()

	const query = `
SELECT COALESCE(SUM(amount) + SUM(reward), 0)
FROM transactions
WHERE recipient = ? AND block_height <= ?`

	var sum float64
	if err = r.db.QueryRowContext(ctx, query, addr, maxHeight).Scan(&sum); err != nil {
		return 0, fmt.Errorf("query credit sum: %w", err)
	}
	return sum, nil
}

// DebitSum returns sum(amount + fee) sent by addr up to and including
// maxHeight.
func (r *Repository) DebitSum(ctx context.Context, addr string, maxHeight int64) (float64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("debit_sum", err, start)
	}()

	const query = `
SELECT COALESCE(SUM(amount) + SUM(fee), 0)
FROM transactions
WHERE address = ? AND block_height <= ?`

	var sum float64
	if err = r.db.QueryRowContext(ctx, query, addr, maxHeight).Scan(&sum); err != nil {
		return 0, fmt.Errorf("query debit sum: %w", err)
	}
	return sum, nil
}

// ReceivedSum returns sum(amount) received by addr up to and including
// maxHeight. Rewards do not count as received.
func (r *Repository) ReceivedSum(ctx context.Context, addr string, maxHeight int64) (float64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("received_sum", err, start)
	}()

	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE recipient = ? AND block_height <= ?`

	var sum float64
	if err = r.db.QueryRowContext(ctx, query, addr, maxHeight).Scan(&sum); err != nil {
		return 0, fmt.Errorf("query received sum: %w", err)
	}
	return sum, nil
}
