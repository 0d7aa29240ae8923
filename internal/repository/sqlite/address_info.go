package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// KnownAddress reports whether the address has ever appeared in a confirmed
// transaction, as sender or recipient.
func (r *Repository) KnownAddress(ctx context.Context, addr string) (bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("known_address", err, start)
	}()

	const query = `
SELECT EXISTS (
	SELECT 1 FROM transactions WHERE address = ? OR recipient = ?
)`

	var known bool
	if err = r.db.QueryRowContext(ctx, query, addr, addr).Scan(&known); err != nil {
		return false, fmt.Errorf("query known address: %w", err)
	}
	return known, nil
}

// PubKeyForAddress returns the decoded public key the address signed with,
// or an empty string when the address never sent a transaction.
func (r *Repository) PubKeyForAddress(ctx context.Context, addr string) (string, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("pubkey_for_address", err, start)
	}()

	const query = `
SELECT public_key
FROM transactions
WHERE address = ? AND CAST(reward AS REAL) = 0
LIMIT 1`

	var pubkey string
	err = r.db.QueryRowContext(ctx, query, addr).Scan(&pubkey)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query public key: %w", err)
	}
	return model.DecodePubKey(pubkey), nil
}
