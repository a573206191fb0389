package models

import "time"

// Order is the durable record of a redeemed claim, awaiting completion by
// an admin. At most one open order exists per user; completion deletes the
// record, there is no retained "completed" state.
type Order struct {
	OrderID string `json:"orderID"`

	// UserID references the owning user. Unique across open orders.
	UserID string `json:"userID"`

	// Items is the ordered item ID snapshot captured in the redeemed claim.
	Items []string `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Order model.
func (o Order) TableName() string {
	return "orders"
}

// OrderView is an order resolved for display: user identity fields plus
// items with their categories populated.
type OrderView struct {
	OrderID   string         `json:"orderID"`
	User      UserDisplay    `json:"user"`
	Items     []ResolvedItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

// MintedClaim is the artifact returned to the claiming user: the signed
// claim token plus its QR rendering (base64-encoded PNG) and expiry.
type MintedClaim struct {
	Token     string    `json:"token"`
	QRCode    string    `json:"qrcode"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ClaimPreview is the read-only resolution of a claim token shown to the
// scanning admin before redemption.
type ClaimPreview struct {
	User  UserDisplay    `json:"user"`
	Items []ResolvedItem `json:"items"`
}
