// Package model holds the transaction and block records served by the API
// layer, plus the two historical wire encodings they travel in.
package model

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Transaction is the normalized ledger row. Amounts are kept in native units
// (1e-8 coins) regardless of which encoding the row came from.
type Transaction struct {
	BlockHeight int64
	Timestamp   float64
	Address     string
	Recipient   string
	Amount      int64
	Signature   string
	PubKey      string
	BlockHash   string
	Fee         int64
	Reward      int64
	Operation   string
	Openfield   string
}

// tupleLen is the field count of both wire tuples.
const tupleLen = 12

// ToLegacyTuple renders the transaction in the legacy wire order: amounts as
// eight-decimal strings, timestamp as a two-decimal string.
func (t Transaction) ToLegacyTuple() []any {
	return []any{
		t.BlockHeight,
		FormatLegacyTimestamp(t.Timestamp),
		t.Address,
		t.Recipient,
		FormatLegacyAmount(t.Amount),
		t.Signature,
		t.PubKey,
		t.BlockHash,
		FormatLegacyAmount(t.Fee),
		FormatLegacyAmount(t.Reward),
		t.Operation,
		t.Openfield,
	}
}

// ToV2Tuple renders the transaction in the v2 wire order, with amounts as
// integers in native units.
func (t Transaction) ToV2Tuple() []any {
	return []any{
		t.BlockHeight,
		t.Timestamp,
		t.Address,
		t.Recipient,
		t.Amount,
		t.Signature,
		t.PubKey,
		t.BlockHash,
		t.Fee,
		t.Reward,
		t.Operation,
		t.Openfield,
	}
}

// FromLegacyTuple parses a JSON-decoded legacy tuple back into a Transaction.
func FromLegacyTuple(tuple []any) (Transaction, error) {
	if len(tuple) != tupleLen {
		return Transaction{}, fmt.Errorf("legacy tuple has %d fields, want %d", len(tuple), tupleLen)
	}

	height, err := tupleInt(tuple[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple height: %w", err)
	}
	ts, err := tupleFloat(tuple[1])
	if err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple timestamp: %w", err)
	}

	tx := Transaction{BlockHeight: height, Timestamp: ts}
	if tx.Address, err = tupleString(tuple[2]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple address: %w", err)
	}
	if tx.Recipient, err = tupleString(tuple[3]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple recipient: %w", err)
	}
	if tx.Amount, err = tupleAmount(tuple[4]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple amount: %w", err)
	}
	if tx.Signature, err = tupleString(tuple[5]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple signature: %w", err)
	}
	if tx.PubKey, err = tupleString(tuple[6]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple public key: %w", err)
	}
	if tx.BlockHash, err = tupleString(tuple[7]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple block hash: %w", err)
	}
	if tx.Fee, err = tupleAmount(tuple[8]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple fee: %w", err)
	}
	if tx.Reward, err = tupleAmount(tuple[9]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple reward: %w", err)
	}
	if tx.Operation, err = tupleString(tuple[10]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple operation: %w", err)
	}
	if tx.Openfield, err = tupleString(tuple[11]); err != nil {
		return Transaction{}, fmt.Errorf("legacy tuple openfield: %w", err)
	}
	return tx, nil
}

// FromV2Tuple parses a JSON-decoded v2 tuple back into a Transaction.
func FromV2Tuple(tuple []any) (Transaction, error) {
	if len(tuple) != tupleLen {
		return Transaction{}, fmt.Errorf("v2 tuple has %d fields, want %d", len(tuple), tupleLen)
	}

	height, err := tupleInt(tuple[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple height: %w", err)
	}
	ts, err := tupleFloat(tuple[1])
	if err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple timestamp: %w", err)
	}

	tx := Transaction{BlockHeight: height, Timestamp: ts}
	if tx.Address, err = tupleString(tuple[2]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple address: %w", err)
	}
	if tx.Recipient, err = tupleString(tuple[3]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple recipient: %w", err)
	}
	if tx.Amount, err = tupleInt(tuple[4]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple amount: %w", err)
	}
	if tx.Signature, err = tupleString(tuple[5]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple signature: %w", err)
	}
	if tx.PubKey, err = tupleString(tuple[6]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple public key: %w", err)
	}
	if tx.BlockHash, err = tupleString(tuple[7]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple block hash: %w", err)
	}
	if tx.Fee, err = tupleInt(tuple[8]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple fee: %w", err)
	}
	if tx.Reward, err = tupleInt(tuple[9]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple reward: %w", err)
	}
	if tx.Operation, err = tupleString(tuple[10]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple operation: %w", err)
	}
	if tx.Openfield, err = tupleString(tuple[11]); err != nil {
		return Transaction{}, fmt.Errorf("v2 tuple openfield: %w", err)
	}
	return tx, nil
}

// ToDict renders the transaction as the keyed record used in block responses.
// With legacy set, amounts and the timestamp become fixed-point strings.
// With decodePubkey set, a base64-encoded public key is sent decoded; keys
// that do not decode to text are passed through untouched.
func (t Transaction) ToDict(legacy, decodePubkey bool) map[string]any {
	pubkey := t.PubKey
	if decodePubkey {
		pubkey = DecodePubKey(pubkey)
	}

	dict := map[string]any{
		"block_height": t.BlockHeight,
		"address":      t.Address,
		"recipient":    t.Recipient,
		"signature":    t.Signature,
		"public_key":   pubkey,
		"block_hash":   t.BlockHash,
		"operation":    t.Operation,
		"openfield":    t.Openfield,
	}
	if legacy {
		dict["timestamp"] = FormatLegacyTimestamp(t.Timestamp)
		dict["amount"] = FormatLegacyAmount(t.Amount)
		dict["fee"] = FormatLegacyAmount(t.Fee)
		dict["reward"] = FormatLegacyAmount(t.Reward)
	} else {
		dict["timestamp"] = t.Timestamp
		dict["amount"] = t.Amount
		dict["fee"] = t.Fee
		dict["reward"] = t.Reward
	}
	return dict
}

// DecodePubKey decodes a base64 public key to its textual form, returning the
// input unchanged when it is not valid base64 text.
func DecodePubKey(pubkey string) string {
	decoded, err := base64.StdEncoding.DecodeString(pubkey)
	if err != nil || !utf8.Valid(decoded) {
		return pubkey
	}
	return string(decoded)
}

func tupleString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type %T", v)
	}
	return s, nil
}

func tupleInt(v any) (int64, error) {
	switch value := v.(type) {
	case int64:
		return value, nil
	case int:
		return int64(value), nil
	case float64:
		i := int64(value)
		if float64(i) != value {
			return 0, fmt.Errorf("value %v is not an integer", value)
		}
		return i, nil
	case string:
		return strconv.ParseInt(value, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func tupleFloat(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int64:
		return float64(value), nil
	case int:
		return float64(value), nil
	case string:
		return strconv.ParseFloat(value, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// tupleAmount accepts either a fixed-point string (legacy) or a number.
func tupleAmount(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return ParseLegacyAmount(s)
	}
	return tupleInt(v)
}
