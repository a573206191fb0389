package models

import (
	"strings"
	"time"
)

// MaxSelectedItems is the upper bound on a user's live selection.
// Every selection-mutating write must keep len(Items) within this limit.
const MaxSelectedItems = 3

// User represents an account entity used for authentication, authorization
// and ordering. Email and Phone hold ciphertext at rest; the matching
// *Digest fields hold a deterministic keyed digest used for uniqueness
// checks and lookups without decrypting the whole table.
type User struct {
	// UserID is the unique identifier of the user (UUID string).
	UserID string `json:"userID"`

	// FirstName is required at registration; LastName may be empty.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Admin marks staff accounts that may manage the catalog and
	// redeem/complete orders.
	Admin bool `json:"admin"`

	// Email is the encrypted-at-rest email address. Unique per account.
	Email string `json:"-"`

	// Phone is the encrypted-at-rest phone number. Unique per account.
	Phone string `json:"-"`

	// EmailDigest and PhoneDigest are HMAC digests of the plaintext values,
	// used as blind indexes at the persistence layer.
	EmailDigest string `json:"-"`
	PhoneDigest string `json:"-"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed outside trusted boundaries.
	PasswordHash string `json:"-"`

	// Avatar is an optional URL to a profile image.
	Avatar string `json:"avatar,omitempty"`

	// Items is the live selection: the current working set of chosen
	// item IDs, at most MaxSelectedItems long.
	Items []string `json:"items"`

	// History is the append-only log of past selection snapshots.
	// Each entry is the item list of one redeemed order.
	History [][]string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// FullName derives the display name from the first and last name parts.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// SplitFullName splits a combined display name into first and last name
// parts at the first space. It is invoked only at boundaries that accept a
// combined name string; the stored fields are always the split parts.
func SplitFullName(fullName string) (first, last string) {
	fullName = strings.TrimSpace(fullName)
	if i := strings.IndexByte(fullName, ' '); i >= 0 {
		return fullName[:i], strings.TrimSpace(fullName[i+1:])
	}
	return fullName, ""
}

// Registration is the payload accepted when creating a new account.
// Email, Phone and Password arrive as plaintext and are transformed
// (encrypted, hashed) before the first persist.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Avatar    string `json:"avatar,omitempty"`
}

// Profile is the decrypted, caller-facing view of a user record.
type Profile struct {
	UserID    string    `json:"userID"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Admin     bool      `json:"admin"`
	Avatar    string    `json:"avatar,omitempty"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDisplay is the minimal public identity attached to resolved orders
// and claim previews.
type UserDisplay struct {
	UserID   string `json:"userID"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar,omitempty"`
}
