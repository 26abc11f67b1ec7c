package store

import (
	"context"
	"fmt"
)

// encryptDEA encrypts a DEA number for the dea_encrypted column. An empty
// DEA stores as the empty string so the column never holds a ciphertext of
// nothing.
func (b *Base) encryptDEA(ctx context.Context, dea string) (string, error) {
	ciphertext, err := b.Crypto.EncryptString(ctx, dea)
	if err != nil {
		return "", fmt.Errorf("encrypting dea number: %w", err)
	}

	return ciphertext, nil
}

// decryptDEA reverses encryptDEA. Empty ciphertext means no DEA on file.
func (b *Base) decryptDEA(ctx context.Context, ciphertext string) (string, error) {
	dea, err := b.Crypto.DecryptString(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("decrypting dea number: %w", err)
	}

	return dea, nil
}
