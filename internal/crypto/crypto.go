package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Service provides AES-256-GCM encryption and decryption for sensitive
// columns such as provider DEA numbers.
type Service struct {
	keys KeyProvider
}

// NewService creates an encryption service backed by the given key provider.
func NewService(keys KeyProvider) *Service {
	return &Service{keys: keys}
}

// Encrypt encrypts plaintext with AES-256-GCM.
// Returns base64-encoded nonce+ciphertext.
func (s *Service) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	key, err := s.keys.GetKey(ctx)
	if err != nil {
		return "", fmt.Errorf("crypto: get key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("crypto: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypto: generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decrypts a base64-encoded ciphertext (nonce prepended).
func (s *Service) Decrypt(ctx context.Context, ciphertext string) ([]byte, error) {
	key, err := s.keys.GetKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("crypto: get key: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("crypto: base64 decode: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("crypto: ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("crypto: decrypt failed: %w", err)
	}

	return plaintext, nil
}

// EncryptString encrypts a string value. Empty input passes through as empty
// so optional columns stay NULL-equivalent.
func (s *Service) EncryptString(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	return s.Encrypt(ctx, []byte(plaintext))
}

// DecryptString decrypts a string produced by EncryptString.
func (s *Service) DecryptString(ctx context.Context, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	out, err := s.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
