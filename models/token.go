package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the custom "kind" claim. A session token presented
// where an order claim is expected (or vice versa) must fail verification.
const (
	TokenKindSession    = "session"
	TokenKindOrderClaim = "order"
)

// Token holds a freshly signed JWT in its compact serialized form
// (header.payload.signature), ready to be set as a cookie value or
// transmitted in an HTTP header.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// ExpiresAt is the "exp" claim of the signed token, kept so callers
	// can set matching cookie lifetimes without re-parsing.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// SessionClaims is the claim set of a session token: long-lived identity
// carried in a signed cookie or bearer header.
type SessionClaims struct {
	jwt.RegisteredClaims

	Kind     string `json:"kind"`
	FullName string `json:"fullName"`
	Admin    bool   `json:"admin"`
	Avatar   string `json:"avatar,omitempty"`
}

// OrderClaims is the claim set of an order claim token: a short-lived,
// single-use snapshot of a user's selection, redeemed by an admin scanner.
// The "jti" registered claim is the single-use marker recorded at
// redemption time.
type OrderClaims struct {
	jwt.RegisteredClaims

	Kind  string   `json:"kind"`
	Items []string `json:"items"`
}

// Session is the verified identity extracted from a session token.
// It is what handlers and services receive as the caller identity.
type Session struct {
	UserID   string
	FullName string
	Admin    bool
	Avatar   string
}

// OrderClaim is the verified payload extracted from an order claim token.
type OrderClaim struct {
	// UserID is the owner of the claimed selection (the "sub" claim).
	UserID string

	// Items is the selection snapshot captured at mint time.
	Items []string

	// JTI is the unique identifier of this claim, consumed on redemption.
	JTI string
}
