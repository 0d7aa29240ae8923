package service

import "context"

// apiDisabled serves the operations that are permanently switched off:
// the generic filtered block query would assemble caller-supplied SQL
// fragments, and the transaction-by-id/signature lookups have not been
// rebuilt on the structured transaction model. They fail before reading
// any parameter and never reach storage.
func (d *Dispatcher) apiDisabled(_ context.Context, _ Call) error {
	return ErrUnavailable
}
