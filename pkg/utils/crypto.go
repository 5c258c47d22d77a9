package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	saltLength       = 16
	keyLength        = 32
)

// ErrInvalidHashFormat is returned when a stored password hash does not
// split into the expected "salt.hash" form.
var ErrInvalidHashFormat = errors.New("invalid password hash format")

// HashPassword derives a PBKDF2-SHA256 key from the password with a fresh
// random salt. The stored form is base64(salt) + "." + base64(key).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)

	return base64.StdEncoding.EncodeToString(salt) + "." + base64.StdEncoding.EncodeToString(key), nil
}

// CheckPasswordHash verifies a plaintext password against a stored
// "salt.hash" form. A malformed stored form is an error, not a mismatch.
func CheckPasswordHash(password, stored string) (bool, error) {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false, ErrInvalidHashFormat
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, ErrInvalidHashFormat
	}
	expected, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, ErrInvalidHashFormat
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
