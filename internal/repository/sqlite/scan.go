package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// txColumns is the canonical column order of the transactions table.
const txColumns = "block_height, timestamp, address, recipient, amount, signature, public_key, block_hash, fee, reward, operation, openfield"

// scanTransactions drains rows into normalized transactions. Money columns
// are scanned as text and decoded per the configured encoding.
func (r *Repository) scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	txs := make([]model.Transaction, 0)
	for rows.Next() {
		var (
			tx                  model.Transaction
			amount, fee, reward string
		)
		if err := rows.Scan(
			&tx.BlockHeight,
			&tx.Timestamp,
			&tx.Address,
			&tx.Recipient,
			&amount,
			&tx.Signature,
			&tx.PubKey,
			&tx.BlockHash,
			&fee,
			&reward,
			&tx.Operation,
			&tx.Openfield,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		var err error
		if tx.Amount, err = r.parseMoney(amount); err != nil {
			return nil, fmt.Errorf("decode amount: %w", err)
		}
		if tx.Fee, err = r.parseMoney(fee); err != nil {
			return nil, fmt.Errorf("decode fee: %w", err)
		}
		if tx.Reward, err = r.parseMoney(reward); err != nil {
			return nil, fmt.Errorf("decode reward: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) parseMoney(s string) (int64, error) {
	if r.legacy {
		return model.ParseLegacyAmount(s)
	}
	return strconv.ParseInt(s, 10, 64)
}
