// Package utils provides general-purpose helpers used across the
// application: context keys, JWT token generation and validation for both
// token kinds, and HTTP response writing.
package utils

import (
	"context"

	"github.com/feiyue-app/feiyue-server/models"
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

// SessionCtxKey is the key under which the authentication middleware stores
// the verified caller identity in the request context.
var SessionCtxKey = contextKey("session")

// GetSessionFromContext retrieves the caller identity from the context.
//
// Returns the session and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(models.Session)
	return session, ok
}
