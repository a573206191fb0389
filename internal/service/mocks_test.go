package service

import (
	"context"
	"errors"

	"github.com/feiyue-app/feiyue-server/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	getUserFn         func(ctx context.Context, userID string) (models.User, error)
	findUserFn        func(ctx context.Context, digest string) (models.User, error)
	updateNameFn      func(ctx context.Context, userID, firstName, lastName string) error
	updateEmailFn     func(ctx context.Context, userID, encryptedEmail, emailDigest string) error
	updatePhoneFn     func(ctx context.Context, userID, encryptedPhone, phoneDigest string) error
	updatePasswordFn  func(ctx context.Context, userID, passwordHash string) error
	updateSelectionFn func(ctx context.Context, userID string, items []string) error
	listUsersFn       func(ctx context.Context) ([]models.User, error)
	deleteUserFn      func(ctx context.Context, userID string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) FindUserByDigest(ctx context.Context, digest string) (models.User, error) {
	if m.findUserFn != nil {
		return m.findUserFn(ctx, digest)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateName(ctx context.Context, userID, firstName, lastName string) error {
	if m.updateNameFn != nil {
		return m.updateNameFn(ctx, userID, firstName, lastName)
	}
	return nil
}

func (m *mockUserRepository) UpdateEmail(ctx context.Context, userID, encryptedEmail, emailDigest string) error {
	if m.updateEmailFn != nil {
		return m.updateEmailFn(ctx, userID, encryptedEmail, emailDigest)
	}
	return nil
}

func (m *mockUserRepository) UpdatePhone(ctx context.Context, userID, encryptedPhone, phoneDigest string) error {
	if m.updatePhoneFn != nil {
		return m.updatePhoneFn(ctx, userID, encryptedPhone, phoneDigest)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) UpdateSelection(ctx context.Context, userID string, items []string) error {
	if m.updateSelectionFn != nil {
		return m.updateSelectionFn(ctx, userID, items)
	}
	return nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.CatalogRepository
// ─────────────────────────────────────────────

type mockCatalogRepository struct {
	createCategoryFn func(ctx context.Context, category models.Category) (models.Category, error)
	getCategoryFn    func(ctx context.Context, categoryID string) (models.Category, error)
	listCategoriesFn func(ctx context.Context) ([]models.Category, error)
	renameCategoryFn func(ctx context.Context, categoryID, name string) error
	deleteCategoryFn func(ctx context.Context, categoryID string) error
	createItemFn     func(ctx context.Context, item models.Item) (models.Item, error)
	getItemFn        func(ctx context.Context, itemID string) (models.Item, error)
	getItemsFn       func(ctx context.Context, itemIDs []string) ([]models.Item, error)
	listItemsFn      func(ctx context.Context) ([]models.Item, error)
	updateItemFn     func(ctx context.Context, itemID string, update models.ItemUpdate) error
	moveItemFn       func(ctx context.Context, itemID, categoryID string) error
	deleteItemFn     func(ctx context.Context, itemID string) error
}

func (m *mockCatalogRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, category)
	}
	return category, nil
}

func (m *mockCatalogRepository) GetCategory(ctx context.Context, categoryID string) (models.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(ctx, categoryID)
	}
	return models.Category{CategoryID: categoryID}, nil
}

func (m *mockCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepository) RenameCategory(ctx context.Context, categoryID, name string) error {
	if m.renameCategoryFn != nil {
		return m.renameCategoryFn(ctx, categoryID, name)
	}
	return nil
}

func (m *mockCatalogRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, categoryID)
	}
	return nil
}

func (m *mockCatalogRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, item)
	}
	return item, nil
}

func (m *mockCatalogRepository) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, itemID)
	}
	return models.Item{ItemID: itemID}, nil
}

func (m *mockCatalogRepository) GetItems(ctx context.Context, itemIDs []string) ([]models.Item, error) {
	if m.getItemsFn != nil {
		return m.getItemsFn(ctx, itemIDs)
	}
	items := make([]models.Item, 0, len(itemIDs))
	for _, id := range itemIDs {
		items = append(items, models.Item{ItemID: id})
	}
	return items, nil
}

func (m *mockCatalogRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	if m.listItemsFn != nil {
		return m.listItemsFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepository) UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) error {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, itemID, update)
	}
	return nil
}

func (m *mockCatalogRepository) MoveItem(ctx context.Context, itemID, categoryID string) error {
	if m.moveItemFn != nil {
		return m.moveItemFn(ctx, itemID, categoryID)
	}
	return nil
}

func (m *mockCatalogRepository) DeleteItem(ctx context.Context, itemID string) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(ctx, itemID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.OrderRepository
// ─────────────────────────────────────────────

type mockOrderRepository struct {
	replaceOrderFn func(ctx context.Context, userID, jti string, items []string) (models.Order, error)
	deleteOrderFn  func(ctx context.Context, orderID string) error
	listOrdersFn   func(ctx context.Context) ([]models.Order, error)
}

func (m *mockOrderRepository) ReplaceOrder(ctx context.Context, userID, jti string, items []string) (models.Order, error) {
	if m.replaceOrderFn != nil {
		return m.replaceOrderFn(ctx, userID, jti, items)
	}
	return models.Order{OrderID: "o-1", UserID: userID, Items: items}, nil
}

func (m *mockOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	if m.deleteOrderFn != nil {
		return m.deleteOrderFn(ctx, orderID)
	}
	return nil
}

func (m *mockOrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	if m.listOrdersFn != nil {
		return m.listOrdersFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: Publisher
// ─────────────────────────────────────────────

type mockPublisher struct {
	published []any
	publishFn func(v any) error
}

func (m *mockPublisher) PublishJSON(v any) error {
	m.published = append(m.published, v)
	if m.publishFn != nil {
		return m.publishFn(v)
	}
	return nil
}
