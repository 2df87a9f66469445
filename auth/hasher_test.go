package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Abc12345")
	require.NoError(t, err)
	assert.NotEqual(t, "Abc12345", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "unexpected hash format %q", hash)

	ok, err := h.Verify("Abc12345", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltedOutput(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, b, len(a))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Verify("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedHash))
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 10, NewBcryptHasher(10).cost)
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := "Abc1" + strings.Repeat("x", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	ok, err := h.Verify(long, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	// only the first 72 bytes count
	ok, err = h.Verify(long[:72]+"different tail", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(long[:71], hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
