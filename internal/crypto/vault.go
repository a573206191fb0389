// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidCiphertext is returned by [Vault.Decrypt] for any input that
// cannot be decrypted: bad Base64, truncated blob, or authentication-tag
// mismatch. The underlying cause is deliberately not exposed so that no
// cipher internals leak to callers.
var ErrInvalidCiphertext = errors.New("invalid credential data")

// fieldVault is the private implementation of [Vault].
type fieldVault struct {
	aead      cipher.AEAD
	digestKey []byte
}

// NewVault constructs a [Vault] from two process-wide secrets: the
// encryption secret and the digest secret. Both are stretched to 256-bit
// keys with SHA-256, so any non-empty passphrase works as input.
func NewVault(encryptionSecret, digestSecret string) (Vault, error) {
	if encryptionSecret == "" || digestSecret == "" {
		return nil, errors.New("vault secrets must be non-empty")
	}

	key := sha256.Sum256([]byte(encryptionSecret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	digestKey := sha256.Sum256([]byte(digestSecret))

	return &fieldVault{aead: aead, digestKey: digestKey[:]}, nil
}

// Encrypt implements [Vault]. It encrypts plaintext with AES-256-GCM under
// a random 12-byte nonce and returns Base64(nonce ‖ ciphertext). The nonce
// is prepended so Decrypt can split it out without extra bookkeeping.
func (v *fieldVault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Vault]. Every failure mode collapses into
// [ErrInvalidCiphertext].
func (v *fieldVault) Decrypt(ciphertext string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	nonceSize := v.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := v.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}

// Digest implements [Vault].
func (v *fieldVault) Digest(plaintext string) string {
	h := hmac.New(sha256.New, v.digestKey)
	h.Write([]byte(plaintext))
	return hex.EncodeToString(h.Sum(nil))
}
