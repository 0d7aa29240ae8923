package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
)

func TestGetAddressInfoInvalidAddressSkipsStorage(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, false, false)
	sess := &fakeSession{in: []any{"not-an-address"}}
	ledger := &fakeLedger{}

	require.True(t, d.Dispatch(context.Background(), "api_getaddressinfo", sess, ledger, &fakePeers{}))
	require.Zero(t, ledger.calls)
	require.Equal(t, []any{map[string]any{"known": false, "pubkey": ""}}, sess.sent)
}

func TestGetAddressInfoKnownAddress(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{"alice"}}
	ledger := &fakeLedger{
		knownAddressFn: func(_ context.Context, addr string) (bool, error) {
			require.Equal(t, "alice", addr)
			return true, nil
		},
		pubKeyForAddressFn: func(context.Context, string) (string, error) {
			return "decoded-key", nil
		},
	}

	require.True(t, d.Dispatch(context.Background(), "api_getaddressinfo", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{map[string]any{"known": true, "pubkey": "decoded-key"}}, sess.sent)
}

func TestGetAddressInfoLookupFailureDegrades(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{"alice"}}
	ledger := &fakeLedger{
		knownAddressFn: func(context.Context, string) (bool, error) {
			return false, errors.New("ledger busy")
		},
	}

	// The response is best-effort, never a failure.
	require.True(t, d.Dispatch(context.Background(), "api_getaddressinfo", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{map[string]any{"known": false, "pubkey": ""}}, sess.sent)
}

func TestGetAddressRangeCapsLimit(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{"alice", float64(10), float64(10_000)}}

	var gotLimit int64
	ledger := &fakeLedger{
		addressRangeFn: func(_ context.Context, addr string, startHeight, limit int64) ([]model.Transaction, error) {
			require.Equal(t, "alice", addr)
			require.Equal(t, int64(10), startHeight)
			gotLimit = limit
			return blockFixture(12, "hash-12"), nil
		},
	}

	require.True(t, d.Dispatch(context.Background(), "api_getaddressrange", sess, ledger, &fakePeers{}))
	require.Equal(t, int64(500), gotLimit)

	blocks, ok := sess.sent[0].(map[int64]map[string]any)
	require.True(t, ok)
	require.Contains(t, blocks, int64(12))
}

func TestGetAddressSinceBoundsSpanAndEchoesMinconf(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)

	tests := []struct {
		name      string
		since     float64
		minconf   float64
		maxHeight int64
		wantUpper int64
	}{
		{name: "span capped at 720", since: 100, minconf: 2, maxHeight: 5000, wantUpper: 820},
		{name: "span capped by confirmations", since: 100, minconf: 10, maxHeight: 300, wantUpper: 290},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &fakeSession{in: []any{tt.since, tt.minconf, "alice"}}
			ledger := &fakeLedger{
				maxBlockHeightFn: func(context.Context) (int64, error) { return tt.maxHeight, nil },
				addressTxsBetweenFn: func(_ context.Context, addr string, since, upper int64) ([]model.Transaction, error) {
					require.Equal(t, "alice", addr)
					require.Equal(t, int64(tt.since), since)
					require.Equal(t, tt.wantUpper, upper)
					return blockFixture(since+1, "hash-x"), nil
				},
			}

			require.True(t, d.Dispatch(context.Background(), "api_getaddresssince", sess, ledger, &fakePeers{}))
			require.Len(t, sess.sent, 1)

			reply, ok := sess.sent[0].(map[string]any)
			require.True(t, ok)
			require.Equal(t, tt.wantUpper, reply["last"])
			require.Equal(t, int64(tt.minconf), reply["minconf"])
			require.Len(t, reply["transactions"], 2)
		})
	}
}
