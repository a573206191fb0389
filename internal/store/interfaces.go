package store

import (
	"context"

	"github.com/feiyue-app/feiyue-server/models"
)

// UserRepository is the persistence contract for user accounts. Email and
// phone values cross this boundary already encrypted; their digests are
// computed by the caller.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)

	// FindUserByDigest looks an account up by the blind digest of either
	// its email or its phone number.
	FindUserByDigest(ctx context.Context, digest string) (models.User, error)

	UpdateName(ctx context.Context, userID, firstName, lastName string) error
	UpdateEmail(ctx context.Context, userID, encryptedEmail, emailDigest string) error
	UpdatePhone(ctx context.Context, userID, encryptedPhone, phoneDigest string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateSelection replaces the user's live selection. Length limits are
	// the caller's responsibility.
	UpdateSelection(ctx context.Context, userID string, items []string) error

	ListUsers(ctx context.Context) ([]models.User, error)

	// DeleteUser removes an account. Deleting a missing ID is a no-op.
	DeleteUser(ctx context.Context, userID string) error
}

// CatalogRepository is the persistence contract for categories and items.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, categoryID string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RenameCategory(ctx context.Context, categoryID, name string) error
	DeleteCategory(ctx context.Context, categoryID string) error

	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, itemID string) (models.Item, error)
	GetItems(ctx context.Context, itemIDs []string) ([]models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) error
	MoveItem(ctx context.Context, itemID, categoryID string) error
	DeleteItem(ctx context.Context, itemID string) error
}

// OrderRepository is the persistence contract for open orders and the
// single-use claim markers consumed at redemption.
type OrderRepository interface {
	// ReplaceOrder performs the whole redemption write in one transaction:
	// consume the claim's jti, delete any prior open order for the user,
	// insert the new order, append the snapshot to the user's history and
	// clear the live selection. Either all steps commit or none do.
	ReplaceOrder(ctx context.Context, userID, jti string, items []string) (models.Order, error)

	// DeleteOrder removes an order. Deleting a missing ID is a no-op.
	DeleteOrder(ctx context.Context, orderID string) error

	ListOrders(ctx context.Context) ([]models.Order, error)
}
