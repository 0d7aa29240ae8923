package service

import (
	"fmt"

	"github.com/goodnatureofminers/nodeapi7000-backend/pkg/safe"
)

// Parameter readers. Each operation consumes its parameters from the session
// in a fixed order; a type mismatch surfaces here and is contained by the
// dispatcher.

func receiveString(s Session) (string, error) {
	var v string
	if err := s.Receive(&v); err != nil {
		return "", fmt.Errorf("receive string parameter: %w", err)
	}
	return v, nil
}

func receiveStrings(s Session) ([]string, error) {
	var v []string
	if err := s.Receive(&v); err != nil {
		return nil, fmt.Errorf("receive string list parameter: %w", err)
	}
	return v, nil
}

// receiveInt accepts any JSON number and rejects fractional values, since
// heights and limits arrive as generic numbers on the wire.
func receiveInt(s Session) (int64, error) {
	var v float64
	if err := s.Receive(&v); err != nil {
		return 0, fmt.Errorf("receive integer parameter: %w", err)
	}
	n, err := safe.Int64FromFloat(v)
	if err != nil {
		return 0, fmt.Errorf("integer parameter: %w", err)
	}
	return n, nil
}

// receiveTruthy reads a flag parameter with the loose truthiness legacy
// clients rely on: false, 0, "" and null all count as false.
func receiveTruthy(s Session) (bool, error) {
	var v any
	if err := s.Receive(&v); err != nil {
		return false, fmt.Errorf("receive flag parameter: %w", err)
	}
	switch value := v.(type) {
	case nil:
		return false, nil
	case bool:
		return value, nil
	case float64:
		return value != 0, nil
	case string:
		return value != "", nil
	default:
		return true, nil
	}
}
