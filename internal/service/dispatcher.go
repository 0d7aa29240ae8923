package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/config"
)

// ErrUnavailable marks operations that are permanently disabled because their
// query construction is unsafe or their rewrite is unfinished.
var ErrUnavailable = errors.New("command not available")

var errUnknownCommand = errors.New("unknown command")

type handlerFunc func(ctx context.Context, call Call) error

// Dispatcher maps command names to handlers. The registry is built once at
// construction and never mutated, so Dispatch is safe to call concurrently
// from independent serving goroutines.
type Dispatcher struct {
	mempool   Mempool
	validator AddressValidator
	cfg       *config.Config
	legacy    bool
	logger    *zap.Logger
	metrics   Metrics
	handlers  map[string]handlerFunc
}

// NewDispatcher builds the dispatcher with the node-wide collaborators. The
// ledger handle and peer registry are per-call and travel in the Call.
func NewDispatcher(
	mempool Mempool,
	validator AddressValidator,
	cfg *config.Config,
	logger *zap.Logger,
	metrics Metrics,
) *Dispatcher {
	d := &Dispatcher{
		mempool:   mempool,
		validator: validator,
		cfg:       cfg,
		legacy:    cfg.LegacyDB,
		logger:    logger,
		metrics:   metrics,
	}
	d.handlers = map[string]handlerFunc{
		"api_mempool":        d.apiMempool,
		"api_getconfig":      d.apiGetConfig,
		"api_clearmempool":   d.apiClearMempool,
		"api_ping":           d.apiPing,
		"api_getpeerinfo":    d.apiGetPeerInfo,
		"api_getaddressinfo": d.apiGetAddressInfo,

		"api_getblockfromhash":      d.apiGetBlockFromHash,
		"api_getblockfromhashextra": d.apiGetBlockFromHashExtra,
		"api_getblockfromheight":    d.apiGetBlockFromHeight,
		"api_getblockrange":         d.apiGetBlockRange,
		"api_getblocksince":         d.apiGetBlockSince,
		"api_getblockswhereoflike":  d.apiGetBlocksWhereOfLike,

		"api_getaddressrange": d.apiGetAddressRange,
		"api_getaddresssince": d.apiGetAddressSince,

		"api_getbalance":   d.apiGetBalance,
		"api_getreceived":  d.apiGetReceived,
		"api_listbalance":  d.apiListBalance,
		"api_listreceived": d.apiListReceived,

		// Hard-disabled: caller-influenced query text or unfinished rewrite.
		"api_getblocksafterwhere":           d.apiDisabled,
		"api_gettransaction":                d.apiDisabled,
		"api_gettransactionbysignature":     d.apiDisabled,
		"api_gettransaction_for_recipients": d.apiDisabled,
	}
	return d
}

// Dispatch routes one command to its handler. Any failure, including an
// unknown name or a panicking handler, is logged and reported as false; the
// serving goroutine and the session both stay usable.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, session Session, ledger Ledger, peers Peers) (ok bool) {
	started := time.Now()

	handler, found := d.handlers[name]
	if !found {
		d.logger.Warn("unknown command",
			zap.String("command", name),
			zap.String("remote", session.RemoteAddr()))
		d.metrics.Observe("unknown", errUnknownCommand, started)
		return false
	}

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
			d.logger.Error("command panicked",
				zap.String("command", name),
				zap.String("remote", session.RemoteAddr()),
				zap.Any("panic", r))
			ok = false
		}
		d.metrics.Observe(name, err, started)
	}()

	err = handler(ctx, Call{Session: session, Ledger: ledger, Peers: peers})
	if err != nil {
		d.logger.Warn("command failed",
			zap.String("command", name),
			zap.String("remote", session.RemoteAddr()),
			zap.Error(err))
		return false
	}
	return true
}
