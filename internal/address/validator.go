// Package address validates account address formats before they reach
// storage queries.
package address

import (
	"regexp"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// legacyPattern matches first-generation addresses: a 56 character lowercase
// hex digest.
var legacyPattern = regexp.MustCompile(`^[0-9a-f]{56}$`)

// IsValid reports whether an address string is well formed. Either the
// legacy hex form or a base58check-encoded address with an intact checksum
// is accepted. It performs no storage lookups.
func IsValid(addr string) bool {
	if legacyPattern.MatchString(addr) {
		return true
	}
	if len(addr) < 8 || len(addr) > 64 {
		return false
	}
	_, _, err := base58.CheckDecode(addr)
	return err == nil
}

// Validator is the capability-set check consumed by the command handlers.
type Validator struct{}

// IsValid implements the handler-facing validator interface.
func (Validator) IsValid(addr string) bool {
	return IsValid(addr)
}
