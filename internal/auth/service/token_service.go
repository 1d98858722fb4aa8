package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Totenem/Time-Tracker-App/internal/common/clock"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
	"github.com/Totenem/Time-Tracker-App/internal/common/jwtverify"
	"github.com/Totenem/Time-Tracker-App/internal/observability/metrics"
)

// TokenService signs and verifies session tokens. The secret is injected at
// construction, never read from ambient state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenService(secret string, ttl time.Duration, clk clock.Clock) (*TokenService, error) {
	if secret == "" {
		return nil, commonerrors.ErrInvalidTokenSecret
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}, nil
}

// Issue encodes the identity claims into a compact HS256 token. Tokens
// carry an expiry; verification of a token issued here after the TTL has
// passed fails with a token-expired error.
func (ts *TokenService) Issue(claims jwtverify.Claims) (string, error) {
	now := ts.clock.Now()
	issuedAt := claims.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = now
	}

	mapClaims := jwt.MapClaims{
		"sub": claims.UserID,
		"usr": claims.Username,
		"iat": issuedAt.Unix(),
		"exp": now.Add(ts.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	tokenString, err := t.SignedString(ts.secret)
	if err != nil {
		return "", err
	}

	metrics.SessionTokensIssued.Inc()
	return tokenString, nil
}

func (ts *TokenService) Verify(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ts.secret)
}

// Secret exposes the signing key for wiring the auth gate middleware.
func (ts *TokenService) Secret() string {
	return string(ts.secret)
}
