package utils

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NewAdminKey generates a fresh admin key for a poll along with its bcrypt
// hash. The plain key is returned to the creator exactly once; only the hash
// is persisted.
func NewAdminKey() (plain string, hash string, err error) {
	plain = uuid.New().String()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return plain, string(hashed), nil
}

// CheckAdminKey compares a submitted admin key against the stored hash.
func CheckAdminKey(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
