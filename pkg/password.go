package pkg

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

var (
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	ErrPasswordBlank   = errors.New("password must not be only whitespace")
)

// HashPassword hashes a signup password. Login attempts go through
// ComparePassword only, so accounts are never locked out by these checks.
func HashPassword(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrPasswordBlank
	}
	if len(p) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

func ComparePassword(hash, pw string) error {
	if hash == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
