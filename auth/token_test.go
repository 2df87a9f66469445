package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_IssueCarriesUserIDAndExpiry(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	issuer := NewJWTIssuer("super-secret")
	issuer.now = func() time.Time { return fixed }

	tok, err := issuer.Issue("user-123")
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, fixed.Add(30*24*time.Hour), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, fixed, claims.IssuedAt.Time.UTC())
}

func TestJWTIssuer_ClaimName(t *testing.T) {
	tok, err := NewJWTIssuer("k").Issue("abc")
	require.NoError(t, err)

	mapClaims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, mapClaims)
	require.NoError(t, err)
	assert.Equal(t, "abc", mapClaims["userId"])
}

func TestJWTIssuer_TokensDiffer(t *testing.T) {
	issuer := NewJWTIssuer("k")

	a, err := issuer.Issue("u1")
	require.NoError(t, err)
	b, err := issuer.Issue("u1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestJWTIssuer_MissingSecret(t *testing.T) {
	_, err := NewJWTIssuer("").Issue("u1")
	assert.ErrorIs(t, err, ErrSigningKeyMissing)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	tok, err := NewJWTIssuer("right-secret").Issue("u2")
	require.NoError(t, err)

	_, err = NewJWTIssuer("wrong-secret").Parse(tok)
	assert.Error(t, err)
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer("k")
	issuer.now = func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }

	tok, err := issuer.Issue("u3")
	require.NoError(t, err)

	_, err = NewJWTIssuer("k").Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
