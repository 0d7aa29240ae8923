package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
	"github.com/goodnatureofminers/nodeapi7000-backend/pkg/safe"
)

const (
	addressRangeCap  = 500
	addressSinceSpan = 720
)

// apiGetAddressInfo answers with whether an address ever appeared in a
// transaction and its decoded public key if it signed one. A malformed
// address is answered without touching storage, and lookup failures degrade
// to a best-effort response.
func (d *Dispatcher) apiGetAddressInfo(ctx context.Context, call Call) error {
	info := map[string]any{"known": false, "pubkey": ""}

	addr, err := receiveString(call.Session)
	if err != nil {
		return err
	}
	if !d.validator.IsValid(addr) {
		d.logger.Info("bad address format", zap.String("address", addr))
		return call.Session.Send(info)
	}

	known, err := call.Ledger.KnownAddress(ctx, addr)
	if err != nil {
		d.logger.Warn("address info lookup", zap.String("address", addr), zap.Error(err))
		return call.Session.Send(info)
	}
	info["known"] = known

	pubkey, err := call.Ledger.PubKeyForAddress(ctx, addr)
	if err != nil {
		d.logger.Warn("address pubkey lookup", zap.String("address", addr), zap.Error(err))
		return call.Session.Send(info)
	}
	info["pubkey"] = pubkey
	return call.Session.Send(info)
}

// apiGetAddressRange answers with up to 500 of an address's transactions
// starting at a given height, reorganized by block. Blocks where the address
// did not transact are omitted.
func (d *Dispatcher) apiGetAddressRange(ctx context.Context, call Call) error {
	addr, err := receiveString(call.Session)
	if err != nil {
		return err
	}
	start, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	limit, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	limit = safe.ClampUpper(limit, addressRangeCap)

	txs, err := call.Ledger.AddressRange(ctx, addr, start, limit)
	if err != nil {
		return err
	}
	return call.Session.Send(model.BlocksDict(txs))
}

// apiGetAddressSince answers with an address's transactions above the
// caller's height with at least minconf confirmations, spanning at most 720
// blocks, plus the resolved upper bound for pagination.
func (d *Dispatcher) apiGetAddressSince(ctx context.Context, call Call) error {
	since, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	minconf, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	addr, err := receiveString(call.Session)
	if err != nil {
		return err
	}

	maxHeight, err := call.Ledger.MaxBlockHeight(ctx)
	if err != nil {
		return err
	}
	upper := min(maxHeight-minconf, since+addressSinceSpan)

	txs, err := call.Ledger.AddressTransactionsBetween(ctx, addr, since, upper)
	if err != nil {
		return err
	}
	return call.Session.Send(map[string]any{
		"last":         upper,
		"minconf":      minconf,
		"transactions": legacyTuples(txs),
	})
}
