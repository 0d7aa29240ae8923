package service

import (
	"context"

	"go.uber.org/zap"
)

// apiMempool answers with the pending transactions as wire tuples. An
// unavailable mempool degrades to an empty list plus a logged error; the
// client always gets a response.
func (d *Dispatcher) apiMempool(ctx context.Context, call Call) error {
	txs, err := d.mempool.TransactionsToSend(ctx)
	if err != nil {
		d.logger.Error("mempool unavailable", zap.Error(err))
		txs = nil
	}
	tuples := make([][]any, 0, len(txs))
	for _, tx := range txs {
		tuples = append(tuples, tx.ToTuple())
	}
	return call.Session.Send(tuples)
}

// apiGetConfig echoes the node configuration as a key/value map.
func (d *Dispatcher) apiGetConfig(_ context.Context, call Call) error {
	cfg, err := d.cfg.Map()
	if err != nil {
		return err
	}
	return call.Session.Send(cfg)
}

// apiClearMempool empties the pending-transaction store and always reports
// success; a failing clear is logged, not surfaced.
func (d *Dispatcher) apiClearMempool(ctx context.Context, call Call) error {
	if err := d.mempool.Clear(ctx); err != nil {
		d.logger.Error("clear mempool", zap.Error(err))
	}
	return call.Session.Send("ok")
}

// apiPing acknowledges so idle sessions are not torn down by timeout policy.
func (d *Dispatcher) apiPing(_ context.Context, call Call) error {
	return call.Session.Send("api_pong")
}

// apiGetPeerInfo lists the connected consensus peers. All peers are reported
// as inbound until richer connection metadata is tracked.
func (d *Dispatcher) apiGetPeerInfo(_ context.Context, call Call) error {
	consensus := call.Peers.Consensus()
	info := make([]map[string]any, 0, len(consensus))
	for id, addr := range consensus {
		info = append(info, map[string]any{
			"id":      id,
			"addr":    addr,
			"inbound": true,
		})
	}
	return call.Session.Send(info)
}
