package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
	commonhttp "github.com/Totenem/Time-Tracker-App/internal/common/http"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
)

type Claims struct {
	UserID   string
	Username string
	IssuedAt time.Time
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware guards a handler behind a bearer token. A missing, malformed,
// expired or badly signed token terminates the request with 401.
func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization")
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := parseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("auth failed path=%s: %v", r.URL.Path, err)
				if errors.Is(err, commonerrors.ErrTokenExpired) {
					commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeTokenExpired, "token has expired")
					return
				}
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidToken, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

// ContextWithClaims is a test hook for exercising handlers behind the gate.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ParseToken(tokenString string, secret []byte) (Claims, error) {
	return parseToken(tokenString, secret)
}

func parseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, commonerrors.ErrTokenExpired.WithCause(err)
		}
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("invalid claims type"))
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["usr"].(string)
	if sub == "" || username == "" {
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("missing sub or usr claims"))
	}

	var issuedAt time.Time
	if iat, ok := mapClaims["iat"].(float64); ok {
		issuedAt = time.Unix(int64(iat), 0)
	}

	return Claims{
		UserID:   sub,
		Username: username,
		IssuedAt: issuedAt,
	}, nil
}
