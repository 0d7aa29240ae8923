package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

// fakeSession queues inbound parameters and records outbound responses.
// Values round-trip through JSON so handlers see the same types the wire
// codec would hand them.
type fakeSession struct {
	in   []any
	sent []any
}

func (s *fakeSession) Receive(v any) error {
	if len(s.in) == 0 {
		return io.EOF
	}
	raw, err := json.Marshal(s.in[0])
	if err != nil {
		return err
	}
	s.in = s.in[1:]
	return json.Unmarshal(raw, v)
}

func (s *fakeSession) Send(v any) error {
	s.sent = append(s.sent, v)
	return nil
}

func (s *fakeSession) RemoteAddr() string { return "fake:0" }

var errUnexpectedCall = errors.New("unexpected ledger call")

// fakeLedger counts every storage call and delegates to per-method function
// fields; a nil field fails the call so tests notice unexpected lookups.
type fakeLedger struct {
	calls int

	maxBlockHeightFn            func(ctx context.Context) (int64, error)
	blockTxsByHashFn            func(ctx context.Context, blockHash string) ([]model.Transaction, error)
	blockTxsByHeightFn          func(ctx context.Context, height int64) ([]model.Transaction, error)
	blockHashForHeightFn        func(ctx context.Context, height int64) (string, error)
	difficultyForHeightFn       func(ctx context.Context, height int64) (float64, error)
	transactionsInRangeFn       func(ctx context.Context, start, end int64) ([]model.Transaction, error)
	difficultiesInRangeFn       func(ctx context.Context, start, end int64) ([]float64, error)
	transactionsAboveFn         func(ctx context.Context, height int64) ([]model.Transaction, error)
	transactionsWithPrefixFn    func(ctx context.Context, since, upper int64, prefix string) ([]model.Transaction, error)
	addressRangeFn              func(ctx context.Context, addr string, startHeight, limit int64) ([]model.Transaction, error)
	addressTxsBetweenFn         func(ctx context.Context, addr string, since, upper int64) ([]model.Transaction, error)
	creditSumFn                 func(ctx context.Context, addr string, maxHeight int64) (float64, error)
	debitSumFn                  func(ctx context.Context, addr string, maxHeight int64) (float64, error)
	receivedSumFn               func(ctx context.Context, addr string, maxHeight int64) (float64, error)
	knownAddressFn              func(ctx context.Context, addr string) (bool, error)
	pubKeyForAddressFn          func(ctx context.Context, addr string) (string, error)
}

func (l *fakeLedger) MaxBlockHeight(ctx context.Context) (int64, error) {
	l.calls++
	if l.maxBlockHeightFn == nil {
		return 0, errUnexpectedCall
	}
	return l.maxBlockHeightFn(ctx)
}

func (l *fakeLedger) BlockTransactionsByHash(ctx context.Context, blockHash string) ([]model.Transaction, error) {
	l.calls++
	if l.blockTxsByHashFn == nil {
		return nil, errUnexpectedCall
	}
	return l.blockTxsByHashFn(ctx, blockHash)
}

func (l *fakeLedger) BlockTransactionsByHeight(ctx context.Context, height int64) ([]model.Transaction, error) {
	l.calls++
	if l.blockTxsByHeightFn == nil {
		return nil, errUnexpectedCall
	}
	return l.blockTxsByHeightFn(ctx, height)
}

func (l *fakeLedger) BlockHashForHeight(ctx context.Context, height int64) (string, error) {
	l.calls++
	if l.blockHashForHeightFn == nil {
		return "", errUnexpectedCall
	}
	return l.blockHashForHeightFn(ctx, height)
}

func (l *fakeLedger) DifficultyForHeight(ctx context.Context, height int64) (float64, error) {
	l.calls++
	if l.difficultyForHeightFn == nil {
		return 0, errUnexpectedCall
	}
	return l.difficultyForHeightFn(ctx, height)
}

func (l *fakeLedger) TransactionsInRange(ctx context.Context, start, end int64) ([]model.Transaction, error) {
	l.calls++
	if l.transactionsInRangeFn == nil {
		return nil, errUnexpectedCall
	}
	return l.transactionsInRangeFn(ctx, start, end)
}

func (l *fakeLedger) DifficultiesInRange(ctx context.Context, start, end int64) ([]float64, error) {
	l.calls++
	if l.difficultiesInRangeFn == nil {
		return nil, errUnexpectedCall
	}
	return l.difficultiesInRangeFn(ctx, start, end)
}

func (l *fakeLedger) TransactionsAbove(ctx context.Context, height int64) ([]model.Transaction, error) {
	l.calls++
	if l.transactionsAboveFn == nil {
		return nil, errUnexpectedCall
	}
	return l.transactionsAboveFn(ctx, height)
}

func (l *fakeLedger) TransactionsWithOpenfieldPrefix(ctx context.Context, since, upper int64, prefix string) ([]model.Transaction, error) {
	l.calls++
	if l.transactionsWithPrefixFn == nil {
		return nil, errUnexpectedCall
	}
	return l.transactionsWithPrefixFn(ctx, since, upper, prefix)
}

func (l *fakeLedger) AddressRange(ctx context.Context, addr string, startHeight, limit int64) ([]model.Transaction, error) {
	l.calls++
	if l.addressRangeFn == nil {
		return nil, errUnexpectedCall
	}
	return l.addressRangeFn(ctx, addr, startHeight, limit)
}

func (l *fakeLedger) AddressTransactionsBetween(ctx context.Context, addr string, since, upper int64) ([]model.Transaction, error) {
	l.calls++
	if l.addressTxsBetweenFn == nil {
		return nil, errUnexpectedCall
	}
	return l.addressTxsBetweenFn(ctx, addr, since, upper)
}

func (l *fakeLedger) CreditSum(ctx context.Context, addr string, maxHeight int64) (float64, error) {
	l.calls++
	if l.creditSumFn == nil {
		return 0, errUnexpectedCall
	}
	return l.creditSumFn(ctx, addr, maxHeight)
}

func (l *fakeLedger) DebitSum(ctx context.Context, addr string, maxHeight int64) (float64, error) {
	l.calls++
	if l.debitSumFn == nil {
		return 0, errUnexpectedCall
	}
	return l.debitSumFn(ctx, addr, maxHeight)
}

func (l *fakeLedger) ReceivedSum(ctx context.Context, addr string, maxHeight int64) (float64, error) {
	l.calls++
	if l.receivedSumFn == nil {
		return 0, errUnexpectedCall
	}
	return l.receivedSumFn(ctx, addr, maxHeight)
}

func (l *fakeLedger) KnownAddress(ctx context.Context, addr string) (bool, error) {
	l.calls++
	if l.knownAddressFn == nil {
		return false, errUnexpectedCall
	}
	return l.knownAddressFn(ctx, addr)
}

func (l *fakeLedger) PubKeyForAddress(ctx context.Context, addr string) (string, error) {
	l.calls++
	if l.pubKeyForAddressFn == nil {
		return "", errUnexpectedCall
	}
	return l.pubKeyForAddressFn(ctx, addr)
}

type fakeMempool struct {
	txs      []model.MempoolTransaction
	err      error
	clearErr error
	cleared  bool
}

func (m *fakeMempool) TransactionsToSend(context.Context) ([]model.MempoolTransaction, error) {
	return m.txs, m.err
}

func (m *fakeMempool) Clear(context.Context) error {
	m.cleared = true
	return m.clearErr
}

type fakePeers struct {
	consensus []string
}

func (p *fakePeers) Consensus() []string { return p.consensus }

type stubValidator struct {
	valid bool
}

func (v stubValidator) IsValid(string) bool { return v.valid }

type nopMetrics struct{}

func (nopMetrics) Observe(string, error, time.Time) {}
