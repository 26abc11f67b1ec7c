package crypto

import (
	"context"
	"encoding/hex"
	"fmt"
)

// StaticProvider holds a single key decoded from a hex-encoded string.
// The key is loaded from ENCRYPTION_KEY at startup.
type StaticProvider struct {
	key []byte
}

// NewStaticProvider creates a StaticProvider from a hex-encoded 32-byte key.
func NewStaticProvider(hexKey string) (*StaticProvider, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("crypto/static: invalid hex key: %w", err)
	}

	if len(key) != 32 {
		return nil, fmt.Errorf("crypto/static: key must be 32 bytes, got %d", len(key))
	}

	return &StaticProvider{key: key}, nil
}

// GetKey returns a copy of the static key.
func (p *StaticProvider) GetKey(_ context.Context) ([]byte, error) {
	out := make([]byte, len(p.key))
	copy(out, p.key)

	return out, nil
}
