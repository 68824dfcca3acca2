package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHashPrefix is the marker bcrypt puts in front of every hash it
// produces. A supplied password value carrying this prefix is treated as
// already encoded and left untouched by the reconciler. A plaintext password
// that happens to start with "$2a$" is therefore silently skipped; this is a
// known edge of the scheme and is kept as-is.
const bcryptHashPrefix = "$2a$"

// PasswordHasher abstracts the one-way password hashing scheme so it can be
// injected into services instead of reached through a global.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) error
	IsHashed(value string) bool
}

// bcryptHasher implements PasswordHasher with golang.org/x/crypto/bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a PasswordHasher using bcrypt with the given cost.
// A cost outside bcrypt's valid range falls back to the default cost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}

func (h *bcryptHasher) IsHashed(value string) bool {
	return strings.HasPrefix(value, bcryptHashPrefix)
}
