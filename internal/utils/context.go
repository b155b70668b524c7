// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"

	"github.com/djougoo/propass-central/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key used to store the authenticated token claims in
// the request context. The auth middleware writes it; handlers read it via
// GetClaimsFromContext.
var ClaimsCtxKey = contextKey("claims")

// GetClaimsFromContext retrieves the authenticated token claims from the
// context.
//
// Returns the claims and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetClaimsFromContext(ctx context.Context) (models.TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.TokenClaims)
	return claims, ok
}

// WithClaims returns a child context carrying the given token claims under
// [ClaimsCtxKey].
func WithClaims(ctx context.Context, claims models.TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}
