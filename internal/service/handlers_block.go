package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
	"github.com/goodnatureofminers/nodeapi7000-backend/pkg/safe"
)

const (
	blockRangeCap     = 50
	blockSinceWindow  = 11
	openfieldLikeSpan = 1440
)

// legacyTuples renders rows in the legacy wire order regardless of the
// storage encoding; polling clients only speak the legacy tuple form.
func legacyTuples(txs []model.Transaction) [][]any {
	out := make([][]any, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ToLegacyTuple())
	}
	return out
}

// apiGetBlockFromHash answers a hash lookup with the height-keyed wrapper.
// A single hash yields at most one block, but the wrapper shape is frozen
// for existing consumers and must not be flattened. A missing hash fails the
// call rather than answering empty.
func (d *Dispatcher) apiGetBlockFromHash(ctx context.Context, call Call) error {
	blockHash, err := receiveString(call.Session)
	if err != nil {
		return err
	}
	txs, err := call.Ledger.BlockTransactionsByHash(ctx, blockHash)
	if err != nil {
		return err
	}
	return call.Session.Send(model.BlocksDict(txs))
}

// apiGetBlockFromHashExtra answers the same lookup with the flat block
// record, augmented with the neighbouring block hashes and the block's
// difficulty. Used for JSON-RPC bridging.
func (d *Dispatcher) apiGetBlockFromHashExtra(ctx context.Context, call Call) error {
	blockHash, err := receiveString(call.Session)
	if err != nil {
		return err
	}
	txs, err := call.Ledger.BlockTransactionsByHash(ctx, blockHash)
	if err != nil {
		return err
	}

	height := txs[0].BlockHeight
	block := model.BlocksDict(txs)[height]

	previous, err := call.Ledger.BlockHashForHeight(ctx, height-1)
	if err != nil {
		return fmt.Errorf("previous block hash: %w", err)
	}
	next, err := call.Ledger.BlockHashForHeight(ctx, height+1)
	if err != nil {
		return fmt.Errorf("next block hash: %w", err)
	}
	difficulty, err := call.Ledger.DifficultyForHeight(ctx, height)
	if err != nil {
		return fmt.Errorf("block difficulty: %w", err)
	}

	block["previous_block_hash"] = previous
	block["next_block_hash"] = next
	block["difficulty"] = int64(difficulty)
	return call.Session.Send(block)
}

// apiGetBlockFromHeight answers a height lookup with the same height-keyed
// wrapper as the hash lookup.
func (d *Dispatcher) apiGetBlockFromHeight(ctx context.Context, call Call) error {
	height, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	txs, err := call.Ledger.BlockTransactionsByHeight(ctx, height)
	if err != nil {
		return err
	}
	return call.Session.Send(model.BlocksDict(txs))
}

// apiGetBlockRange answers with up to 50 consecutive blocks grouped into the
// mining/normal transaction shape, with each block's difficulty attached.
// The reply is a JSON-encoded string, not a structured value; the double
// encoding is frozen wire behaviour.
func (d *Dispatcher) apiGetBlockRange(ctx context.Context, call Call) error {
	start, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	limit, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	limit = safe.ClampUpper(limit, blockRangeCap)

	txs, err := call.Ledger.TransactionsInRange(ctx, start, start+limit)
	if err != nil {
		return err
	}
	diffs, err := call.Ledger.DifficultiesInRange(ctx, start, start+limit)
	if err != nil {
		return err
	}

	reply, err := json.Marshal(model.GroupByBlock(txs, diffs))
	if err != nil {
		return fmt.Errorf("encode block range: %w", err)
	}
	return call.Session.Send(string(reply))
}

// apiGetBlockSince answers with the transactions of the most recent blocks.
// The reply is always the window just below the tip: a caught-up poller
// observes new activity promptly, and a caller far behind is handed the same
// window rather than the whole chain.
func (d *Dispatcher) apiGetBlockSince(ctx context.Context, call Call) error {
	since, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	maxHeight, err := call.Ledger.MaxBlockHeight(ctx)
	if err != nil {
		return err
	}

	// Clamp the scan start into the recent window from both sides: never
	// above it, so a caught-up caller still sees the latest blocks, and
	// never below it, so the response stays bounded.
	bound := min(since, maxHeight-blockSinceWindow)
	bound = max(bound, maxHeight-blockSinceWindow)
	txs, err := call.Ledger.TransactionsAbove(ctx, bound)
	if err != nil {
		return err
	}
	return call.Session.Send(legacyTuples(txs))
}

// apiGetBlocksWhereOfLike answers with the transactions after the caller's
// height whose openfield starts with the given literal prefix, spanning at
// most 1440 blocks. The resolved upper bound is appended as the final
// element so the caller can paginate. The prefix is passed as a bound query
// parameter with a single trailing wildcard, never spliced into query text.
func (d *Dispatcher) apiGetBlocksWhereOfLike(ctx context.Context, call Call) error {
	since, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	prefix, err := receiveString(call.Session)
	if err != nil {
		return err
	}
	maxHeight, err := call.Ledger.MaxBlockHeight(ctx)
	if err != nil {
		return err
	}

	upper := min(maxHeight, since+openfieldLikeSpan)
	txs, err := call.Ledger.TransactionsWithOpenfieldPrefix(ctx, since, upper, prefix)
	if err != nil {
		return err
	}

	info := make([]any, 0, len(txs)+1)
	for _, tx := range txs {
		info = append(info, tx.ToLegacyTuple())
	}
	info = append(info, []any{upper})
	return call.Session.Send(info)
}
