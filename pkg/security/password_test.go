package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, h.Compare(hash, "correct horse battery"))
	assert.Error(t, h.Compare(hash, "wrong password"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(-1)

	hash, err := h.Hash("long enough password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
