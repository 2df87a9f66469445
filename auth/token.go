package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is the validity of every issued bearer token.
const TokenLifetime = 30 * 24 * time.Hour

var ErrSigningKeyMissing = errors.New("token signing key is not configured")

// Claims carries the account id under the "userId" claim.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// JWTIssuer signs HS256 tokens with a key fixed at construction.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), now: time.Now}
}

func (i *JWTIssuer) Issue(userID string) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrSigningKeyMissing
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	})

	return token.SignedString(i.secret)
}

// Parse validates a token issued by i and returns its claims.
func (i *JWTIssuer) Parse(tokenString string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrSigningKeyMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
