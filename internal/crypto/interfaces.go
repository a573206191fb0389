// SPDX-License-Identifier: Apache-2.0

package crypto

// Vault performs symmetric field-level encryption of personally identifying
// data (email, phone) before it reaches the persistence layer.
//
// Because AES-GCM ciphertexts are non-deterministic, equality checks and
// lookups over encrypted fields go through [Vault.Digest], a keyed
// deterministic digest of the plaintext stored next to the ciphertext.
type Vault interface {
	// Encrypt encrypts plaintext and returns a Base64-encoded blob of
	// nonce ‖ ciphertext.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Malformed or tampered input yields
	// ErrInvalidCiphertext; the error never carries key material.
	Decrypt(ciphertext string) (string, error)

	// Digest returns a hex-encoded HMAC-SHA256 of plaintext, keyed with a
	// secret distinct from the encryption key. Deterministic: suitable as a
	// blind uniqueness index.
	Digest(plaintext string) string
}
