package stego

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltSize is the per-message KDF salt, stored in the header.
	saltSize = 16

	// nonceSize is the AES-GCM nonce, stored in the header.
	nonceSize = 12

	// kdfIterations is fixed for interoperability; carriers written with a
	// different count cannot be read back. Not configurable.
	kdfIterations = 600_000

	keySize = 32
)

// deriveKey stretches the password into an AES-256 key. An empty password
// still derives a key from the empty byte string, so open (unlocked)
// carriers remain integrity-protected even though anyone can read them.
func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, keySize, sha256.New)
}

// sealPayload encrypts and authenticates the plaintext. The 16-byte GCM tag
// is appended to the ciphertext and travels with it as one opaque buffer.
func sealPayload(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// openPayload decrypts and verifies the ciphertext. On any authentication
// failure it returns ErrWrongPasswordOrTampered and no plaintext bytes;
// wrong password and tampering are indistinguishable by design.
func openPayload(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, newError(ErrWrongPasswordOrTampered, "authentication failed")
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// randomBytes fills a fresh slice from the system CSPRNG.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// scatterSeed reads the first four salt bytes as a little-endian u32. The
// whole 32-bit word is used; summing bytes would collapse the seed space.
func scatterSeed(salt []byte) uint32 {
	return binary.LittleEndian.Uint32(salt[:4])
}

// zeroize wipes key material once an operation completes or fails.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
