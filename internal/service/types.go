// Package service routes named client commands to their handlers and computes
// the read-only ledger views they answer with.
package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

type (
	// Session is the framed request/response channel to one client. Each
	// Receive reads exactly one parameter in the operation's fixed order.
	Session interface {
		Receive(v any) error
		Send(v any) error
		RemoteAddr() string
	}

	// Ledger is the read-only view of the confirmed transaction store.
	Ledger interface {
		MaxBlockHeight(ctx context.Context) (int64, error)
		BlockTransactionsByHash(ctx context.Context, blockHash string) ([]model.Transaction, error)
		BlockTransactionsByHeight(ctx context.Context, height int64) ([]model.Transaction, error)
		BlockHashForHeight(ctx context.Context, height int64) (string, error)
		DifficultyForHeight(ctx context.Context, height int64) (float64, error)
		TransactionsInRange(ctx context.Context, start, end int64) ([]model.Transaction, error)
		DifficultiesInRange(ctx context.Context, start, end int64) ([]float64, error)
		TransactionsAbove(ctx context.Context, height int64) ([]model.Transaction, error)
		TransactionsWithOpenfieldPrefix(ctx context.Context, since, upper int64, prefix string) ([]model.Transaction, error)
		AddressRange(ctx context.Context, addr string, startHeight, limit int64) ([]model.Transaction, error)
		AddressTransactionsBetween(ctx context.Context, addr string, since, upper int64) ([]model.Transaction, error)
		CreditSum(ctx context.Context, addr string, maxHeight int64) (float64, error)
		DebitSum(ctx context.Context, addr string, maxHeight int64) (float64, error)
		ReceivedSum(ctx context.Context, addr string, maxHeight int64) (float64, error)
		KnownAddress(ctx context.Context, addr string) (bool, error)
		PubKeyForAddress(ctx context.Context, addr string) (string, error)
	}

	// Mempool is the store of transactions not yet included in a block.
	Mempool interface {
		TransactionsToSend(ctx context.Context) ([]model.MempoolTransaction, error)
		Clear(ctx context.Context) error
	}

	// Peers enumerates the currently connected consensus peers.
	Peers interface {
		Consensus() []string
	}

	// AddressValidator format-checks an address before it reaches storage.
	AddressValidator interface {
		IsValid(addr string) bool
	}

	// Metrics records per-command dispatch outcomes.
	Metrics interface {
		Observe(command string, err error, started time.Time)
	}
)

// Call carries the per-invocation collaborators into a handler. The session
// and ledger handle belong to the serving connection; nothing here is shared
// across calls.
type Call struct {
	Session Session
	Ledger  Ledger
	Peers   Peers
}
