package device

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// DigestSHA256 returns the lowercase hex SHA-256 digest of the UTF-8
// bytes of text. The output is identical on every platform; password
// hashes written on one device must validate on another.
func DigestSHA256(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RandomBytes returns n cryptographically random bytes. A CSPRNG
// failure is not recoverable here; without randomness registration is
// unsafe to proceed, so the error propagates.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// NewUserID formats 16 random bytes as a UUID string (8-4-4-4-12 hex
// groups). The bytes are used verbatim — no version or variant bits —
// to stay format-compatible with identifiers already in the backend.
func NewUserID() (string, error) {
	b, err := RandomBytes(16)
	if err != nil {
		return "", err
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
