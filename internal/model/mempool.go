package model

// MempoolTransaction is a pending transaction awaiting confirmation. Amounts
// stay in the legacy string form the mempool receives them in.
type MempoolTransaction struct {
	Timestamp float64
	Address   string
	Recipient string
	Amount    string
	Signature string
	PubKey    string
	Operation string
	Openfield string
}

// ToTuple renders the pending transaction in the mempool wire order.
func (t MempoolTransaction) ToTuple() []any {
	return []any{
		FormatLegacyTimestamp(t.Timestamp),
		t.Address,
		t.Recipient,
		t.Amount,
		t.Signature,
		t.PubKey,
		t.Operation,
		t.Openfield,
	}
}
