package utils

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey expands the configured secret into a 32-byte key bound to
// purpose, so that one SESSION_SECRET can feed several independent keys.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("derive %s key: empty secret", purpose)
	}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("table-reservation-web/"+purpose))
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}
