// Package security guards the owner credential. The account is seeded
// once at startup, so the hash path runs once per boot and the compare
// path on every login.
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooShort rejects seed passwords under eight characters
// before they ever reach bcrypt.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

const minPasswordLen = 8

// Hasher hashes the owner password and verifies login attempts
// against the stored hash.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed Hasher. A cost outside the
// bcrypt range falls back to the default; tests pass bcrypt.MinCost to
// keep seeding fast.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
