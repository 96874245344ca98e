// Package auth extracts the acting principal from requests. Authentication
// itself lives in an external identity service; this package only verifies
// the JWT that service issued and makes the principal available to handlers
// that need an editor identity for the audit trail.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the identity the external service vouched for.
type Principal struct {
	Subject string
	Name    string
}

type ctxKey struct{}

// FromContext returns the principal attached by Verifier, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// Verifier parses a Bearer token when present and attaches the principal to
// the request context. Requests without a token pass through anonymous;
// enforcement is a per-route decision via RequirePrincipal.
func Verifier(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			principal, err := parse(raw, secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, principal)))
		})
	}
}

// RequirePrincipal rejects requests that carry no verified principal. Applied
// to mutating routes so every administrative action has an editor identity.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func parse(raw string, secret []byte) (Principal, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		return Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		return Principal{}, fmt.Errorf("token has no subject")
	}

	name, _ := claims["name"].(string)

	return Principal{Subject: subject, Name: name}, nil
}

// Editor names the principal for audit logging, preferring the display name.
func (p Principal) Editor() string {
	if p.Name != "" {
		return p.Name
	}

	return p.Subject
}
