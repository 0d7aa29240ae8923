package service

import (
	"context"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
	"github.com/goodnatureofminers/nodeapi7000-backend/pkg/safe"
)

// balanceOf computes credit minus debit for one address over the confirmed
// horizon: amounts and rewards received as recipient, less amounts and fees
// sent as sender. Recomputed fresh on every call.
func balanceOf(ctx context.Context, ledger Ledger, addr string, maxHeight int64) (float64, error) {
	credit, err := ledger.CreditSum(ctx, addr, maxHeight)
	if err != nil {
		return 0, err
	}
	debit, err := ledger.DebitSum(ctx, addr, maxHeight)
	if err != nil {
		return 0, err
	}
	return credit - debit, nil
}

// confirmedHorizon reads the current max height and applies the minconf
// clamp. Confirmation depth below one makes no sense for financial callers.
func (d *Dispatcher) confirmedHorizon(ctx context.Context, ledger Ledger, minconf int64) (int64, int64, error) {
	minconf = safe.ClampLower(minconf, 1)
	maxHeight, err := ledger.MaxBlockHeight(ctx)
	if err != nil {
		return 0, 0, err
	}
	return maxHeight - minconf, minconf, nil
}

// toCoinUnits converts native units to whole coins unless the ledger already
// stores whole-coin decimals.
func (d *Dispatcher) toCoinUnits(v float64) float64 {
	if d.legacy {
		return v
	}
	return v / model.AmountUnit
}

// apiGetBalance answers with the summed balance of a list of addresses at
// the requested confirmation depth.
func (d *Dispatcher) apiGetBalance(ctx context.Context, call Call) error {
	addresses, err := receiveStrings(call.Session)
	if err != nil {
		return err
	}
	minconf, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	horizon, _, err := d.confirmedHorizon(ctx, call.Ledger, minconf)
	if err != nil {
		return err
	}

	var total float64
	for _, addr := range addresses {
		balance, err := balanceOf(ctx, call.Ledger, addr, horizon)
		if err != nil {
			return err
		}
		total += balance
	}
	return call.Session.Send(d.toCoinUnits(total))
}

// apiGetReceived answers with the summed received amount of a list of
// addresses; only the credit term, no rewards, fees or debits.
func (d *Dispatcher) apiGetReceived(ctx context.Context, call Call) error {
	addresses, err := receiveStrings(call.Session)
	if err != nil {
		return err
	}
	minconf, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	horizon, _, err := d.confirmedHorizon(ctx, call.Ledger, minconf)
	if err != nil {
		return err
	}

	var total float64
	for _, addr := range addresses {
		received, err := call.Ledger.ReceivedSum(ctx, addr, horizon)
		if err != nil {
			return err
		}
		total += received
	}
	return call.Session.Send(d.toCoinUnits(total))
}

// apiListBalance answers with a per-address balance map. The include_empty
// flag keeps or drops zero balances; the emptiness check runs on the
// converted value, matching long-standing client expectations.
func (d *Dispatcher) apiListBalance(ctx context.Context, call Call) error {
	addresses, err := receiveStrings(call.Session)
	if err != nil {
		return err
	}
	minconf, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	includeEmpty, err := receiveTruthy(call.Session)
	if err != nil {
		return err
	}
	horizon, _, err := d.confirmedHorizon(ctx, call.Ledger, minconf)
	if err != nil {
		return err
	}

	balances := make(map[string]float64)
	for _, addr := range addresses {
		balance, err := balanceOf(ctx, call.Ledger, addr, horizon)
		if err != nil {
			return err
		}
		balance = d.toCoinUnits(balance)
		if includeEmpty || balance > 0 {
			balances[addr] = balance
		}
	}
	return call.Session.Send(balances)
}

// apiListReceived answers with a per-address received map. Unlike the
// balance list, the emptiness check runs on the raw aggregate before unit
// conversion; the asymmetry is frozen wire behaviour.
func (d *Dispatcher) apiListReceived(ctx context.Context, call Call) error {
	addresses, err := receiveStrings(call.Session)
	if err != nil {
		return err
	}
	minconf, err := receiveInt(call.Session)
	if err != nil {
		return err
	}
	includeEmpty, err := receiveTruthy(call.Session)
	if err != nil {
		return err
	}
	horizon, _, err := d.confirmedHorizon(ctx, call.Ledger, minconf)
	if err != nil {
		return err
	}

	received := make(map[string]float64)
	for _, addr := range addresses {
		sum, err := call.Ledger.ReceivedSum(ctx, addr, horizon)
		if err != nil {
			return err
		}
		if includeEmpty || sum > 0 {
			received[addr] = d.toCoinUnits(sum)
		}
	}
	return call.Session.Send(received)
}
