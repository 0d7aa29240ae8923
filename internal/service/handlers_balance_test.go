package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// ledgerWithAggregates serves fixed credit/debit/received sums for two
// addresses at height 100 and records the horizon each query used.
func ledgerWithAggregates(t *testing.T, wantHorizon int64) *fakeLedger {
	t.Helper()
	credits := map[string]float64{"alice": 800_000_000, "bob": 50_000_000}
	debits := map[string]float64{"alice": 125_000_000}
	received := map[string]float64{"alice": 300_000_000}

	return &fakeLedger{
		maxBlockHeightFn: func(context.Context) (int64, error) { return 100, nil },
		creditSumFn: func(_ context.Context, addr string, maxHeight int64) (float64, error) {
			require.Equal(t, wantHorizon, maxHeight)
			return credits[addr], nil
		},
		debitSumFn: func(_ context.Context, addr string, maxHeight int64) (float64, error) {
			require.Equal(t, wantHorizon, maxHeight)
			return debits[addr], nil
		},
		receivedSumFn: func(_ context.Context, addr string, maxHeight int64) (float64, error) {
			require.Equal(t, wantHorizon, maxHeight)
			return received[addr], nil
		},
	}
}

func TestGetBalanceSumsAddressesAndConvertsUnits(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{[]string{"alice", "bob"}, float64(2)}}
	ledger := ledgerWithAggregates(t, 98)

	require.True(t, d.Dispatch(context.Background(), "api_getbalance", sess, ledger, &fakePeers{}))
	// (800 - 125 + 50) million native units over 1e8.
	require.Equal(t, []any{7.25}, sess.sent)
}

func TestGetBalanceClampsMinconf(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{[]string{"alice"}, float64(-5)}}
	ledger := ledgerWithAggregates(t, 99)

	require.True(t, d.Dispatch(context.Background(), "api_getbalance", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{6.75}, sess.sent)
}

func TestGetBalanceLegacyKeepsRawUnits(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, true)
	sess := &fakeSession{in: []any{[]string{"alice"}, float64(1)}}
	ledger := ledgerWithAggregates(t, 99)

	require.True(t, d.Dispatch(context.Background(), "api_getbalance", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{float64(675_000_000)}, sess.sent)
}

func TestGetReceivedOnlyCountsCreditTerm(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{[]string{"alice", "bob"}, float64(1)}}
	ledger := ledgerWithAggregates(t, 99)

	require.True(t, d.Dispatch(context.Background(), "api_getreceived", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{3.0}, sess.sent)
}

func TestListBalanceFiltersOnConvertedValue(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{[]string{"alice", "carol"}, float64(1), false}}
	ledger := ledgerWithAggregates(t, 99)

	require.True(t, d.Dispatch(context.Background(), "api_listbalance", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{map[string]float64{"alice": 6.75}}, sess.sent)
}

func TestListBalanceIncludeEmpty(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{[]string{"alice", "carol"}, float64(1), true}}
	ledger := ledgerWithAggregates(t, 99)

	require.True(t, d.Dispatch(context.Background(), "api_listbalance", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{map[string]float64{"alice": 6.75, "carol": 0}}, sess.sent)
}

func TestListReceivedFiltersOnRawValue(t *testing.T) {
	d := newTestDispatcher(&fakeMempool{}, true, false)
	sess := &fakeSession{in: []any{[]string{"alice", "carol"}, float64(1), float64(0)}}
	ledger := ledgerWithAggregates(t, 99)

	require.True(t, d.Dispatch(context.Background(), "api_listreceived", sess, ledger, &fakePeers{}))
	require.Equal(t, []any{map[string]float64{"alice": 3.0}}, sess.sent)
}
