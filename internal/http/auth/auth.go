// Package auth checks bearer tokens and applies per-caller rate limits.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/spendly/internal/ratelimit"
)

type contextKey struct{}

// Subject returns the authenticated subject stored by Middleware.
func Subject(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(contextKey{}).(string)
	return sub, ok
}

// Middleware authenticates requests with an HS256 bearer token signed with
// secret and rate limits them per subject. An empty secret turns
// authentication off; requests are then limited per client address.
func Middleware(secret []byte, limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientAddr(r)

			if len(secret) > 0 {
				sub, err := authenticate(r, secret)
				if err != nil {
					slog.Warn("Rejected request", "path", r.URL.Path, "error", err)

					msg := "invalid token"
					if errors.Is(err, jwt.ErrTokenExpired) {
						msg = "session expired"
					}

					http.Error(w, msg, http.StatusUnauthorized)

					return
				}

				key = sub
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, sub))
			}

			if limiter != nil && !limiter.Allow(key) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var errMissingToken = errors.New("missing bearer token")

func authenticate(r *http.Request, secret []byte) (string, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return "", errMissingToken
	}

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}

	return sub, nil
}

// Issue signs a token for subject valid for ttl.
func Issue(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}).SignedString(secret)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
