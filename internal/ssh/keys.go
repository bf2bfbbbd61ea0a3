package ssh

import (
	"fmt"
	"os"
)

// KeySupplier produces a private key on demand.
type KeySupplier func() ([]byte, error)

// KeyFromFile returns a supplier that reads path on every call.
func KeyFromFile(path string) KeySupplier {
	return func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key %s: %w", path, err)
		}
		return data, nil
	}
}

// KeyFromBytes returns a supplier that hands out a fresh copy of key on
// every call, so callers may zero what they receive.
func KeyFromBytes(key []byte) KeySupplier {
	stored := append([]byte(nil), key...)
	return func() ([]byte, error) {
		return append([]byte(nil), stored...), nil
	}
}
