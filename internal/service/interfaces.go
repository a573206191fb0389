package service

import (
	"context"

	"github.com/feiyue-app/feiyue-server/models"
)

type AuthService interface {
	Register(ctx context.Context, registration models.Registration) (models.Profile, error)

	// Login authenticates by a single identifier that may be either an
	// email address or a phone number.
	Login(ctx context.Context, identifier, password string) (models.User, error)

	CreateSessionToken(ctx context.Context, user models.User) (models.Token, error)
	ParseSessionToken(ctx context.Context, tokenString string) (models.Session, error)
}

type UserService interface {
	GetProfile(ctx context.Context, session models.Session, userID string) (models.Profile, error)

	EditName(ctx context.Context, session models.Session, userID, fullName string) error
	EditEmail(ctx context.Context, session models.Session, userID, email string) error
	EditPhone(ctx context.Context, session models.Session, userID, phone string) error
	EditPassword(ctx context.Context, session models.Session, userID, oldPassword, newPassword string) error

	// UpdateSelection replaces the live selection with at most
	// [models.MaxSelectedItems] existing item IDs.
	UpdateSelection(ctx context.Context, session models.Session, userID string, items []string) error

	// History returns past selection snapshots, newest first, paginated.
	History(ctx context.Context, session models.Session, userID string, page, perPage int) ([][]string, error)

	ListUsers(ctx context.Context, session models.Session) ([]models.Profile, error)
	DeleteUser(ctx context.Context, session models.Session, userID string) error
}

type CatalogService interface {
	CreateCategory(ctx context.Context, session models.Session, name string) (models.Category, error)
	GetCategory(ctx context.Context, categoryID string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListItems(ctx context.Context) ([]models.ResolvedItem, error)
	RenameCategory(ctx context.Context, session models.Session, categoryID, name string) error
	DeleteCategory(ctx context.Context, session models.Session, categoryID string) error

	CreateItem(ctx context.Context, session models.Session, item models.Item) (models.Item, error)
	RenameItem(ctx context.Context, session models.Session, itemID, name string) error
	EditItemImage(ctx context.Context, session models.Session, itemID, image string) error
	SetItemStock(ctx context.Context, session models.Session, itemID string, stock int) error
	MoveItem(ctx context.Context, session models.Session, itemID, categoryID string) error
	DeleteItem(ctx context.Context, session models.Session, itemID string) error
}

type OrderService interface {
	// MintClaim signs the user's current selection into a claim token and
	// renders it as a QR code. Admins may mint on behalf of another user by
	// passing that user's ID; everyone else mints for themselves only.
	MintClaim(ctx context.Context, session models.Session, userID string) (models.MintedClaim, error)

	// InspectClaim resolves a claim token into a read-only preview without
	// consuming it.
	InspectClaim(ctx context.Context, session models.Session, tokenString string) (models.ClaimPreview, error)

	// RedeemClaim consumes a claim token, replacing the user's open order
	// and archiving the snapshot. The resolved order is published on the
	// orders broadcast topic.
	RedeemClaim(ctx context.Context, session models.Session, tokenString string) (models.OrderView, error)

	// CompleteOrder removes a fulfilled order. Idempotent.
	CompleteOrder(ctx context.Context, session models.Session, orderID string) error

	ListOpenOrders(ctx context.Context, session models.Session) ([]models.OrderView, error)
}

// Publisher pushes server-side events to connected admin sockets. The order
// engine publishes each freshly redeemed order on it.
type Publisher interface {
	PublishJSON(v any) error
}
