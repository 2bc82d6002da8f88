package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes        = 16
	derivedKeyBytes  = 32
	pbkdf2Iterations = 4096
)

// PasswordHasher derives salted password hashes. The salt is stored
// alongside the hash in each credential record.
type PasswordHasher struct{}

// NewPasswordHasher creates a password hasher.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash derives a hash from the password under a fresh random salt.
// Both values are hex-encoded.
func (h *PasswordHasher) Hash(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), raw, pbkdf2Iterations, derivedKeyBytes, sha256.New)
	return hex.EncodeToString(key), hex.EncodeToString(raw), nil
}

// Verify checks a password against a stored hash and salt.
func (h *PasswordHasher) Verify(password, salt, hash string) bool {
	raw, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), raw, pbkdf2Iterations, derivedKeyBytes, sha256.New)
	return subtle.ConstantTimeCompare(key, want) == 1
}
