// Package security hashes and verifies the 5-digit access codes used as
// passwords. New hashes are bcrypt; salted and unsalted SHA-256 hex digests
// written by earlier versions still verify.
package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in an access code.
const CodeLength = 5

var ErrEmptyPassword = errors.New("password cannot be empty")

type PasswordHasher struct {
	cost       int
	legacySalt string
}

func NewPasswordHasher(cost int, legacySalt string) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost, legacySalt: legacySalt}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches stored. It never returns an error;
// malformed stored values simply do not match.
func (h *PasswordHasher) Verify(password, stored string) bool {
	if strings.TrimSpace(password) == "" || strings.TrimSpace(stored) == "" {
		return false
	}
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	if !isSHA256Hex(stored) {
		return false
	}
	if h.legacySalt != "" && hexEqual(sha256Hex(password+h.legacySalt), stored) {
		return true
	}
	return hexEqual(sha256Hex(password), stored)
}

// IsAccessCode reports whether s is exactly CodeLength ASCII digits.
func IsAccessCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsSupportedHash reports whether s is a hash format Verify understands.
func IsSupportedHash(s string) bool {
	return isBcrypt(s) || isSHA256Hex(s)
}

func isBcrypt(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func isSHA256Hex(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func hexEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(a)), []byte(strings.ToLower(b))) == 1
}
