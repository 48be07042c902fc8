// Package token issues and verifies the stateless session tokens used by
// cookie-based authentication. A token is an HS256-signed JWT carrying the
// user ID and an expiry; validity is determined entirely by signature and
// expiry, with no server-side session record.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// accepted: bad signature, malformed payload, or past expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the registered JWT claims plus the authenticated user ID.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a process-wide secret.
// The secret and TTL are fixed at construction; the service is safe for
// concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service with the given signing secret and
// token lifetime.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue produces a signed token for the given user ID, expiring ttl from now.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user ID.
// All failure modes collapse into ErrInvalidToken; callers never see a
// partially-decoded token.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
