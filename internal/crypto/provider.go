// Package crypto provides AES-256-GCM encryption for fields stored at rest.
package crypto

import "context"

// KeyProvider returns the AES-256 encryption key for the deployment.
type KeyProvider interface {
	// GetKey returns the 32-byte AES-256 key.
	GetKey(ctx context.Context) ([]byte, error)
}
