package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/internal/validators"
	"github.com/feiyue-app/feiyue-server/models"
)

const (
	minCatalogNameLength = 3
	maxCatalogNameLength = 80
)

// catalogService is the concrete implementation of CatalogService.
// Reads are open to any authenticated caller; every mutation is admin only.
type catalogService struct {
	catalogRepository store.CatalogRepository

	logger *logger.Logger
}

func NewCatalogService(catalogRepository store.CatalogRepository, logger *logger.Logger) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		logger:            logger,
	}
}

func validCatalogName(name string) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(name))
	return length >= minCatalogNameLength && length <= maxCatalogNameLength
}

func (c *catalogService) CreateCategory(ctx context.Context, session models.Session, name string) (models.Category, error) {
	if !session.Admin {
		return models.Category{}, ErrUnauthorized
	}
	if !validCatalogName(name) {
		return models.Category{}, ErrValidationBadName
	}

	category, err := c.catalogRepository.CreateCategory(ctx, models.Category{Name: strings.TrimSpace(name)})
	if err != nil {
		return models.Category{}, fmt.Errorf("category creation failed: %w", err)
	}
	category.Items = []models.Item{}

	return category, nil
}

func (c *catalogService) GetCategory(ctx context.Context, categoryID string) (models.Category, error) {
	category, err := c.catalogRepository.GetCategory(ctx, categoryID)
	if err != nil {
		return models.Category{}, fmt.Errorf("category lookup failed: %w", err)
	}

	return category, nil
}

func (c *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := c.catalogRepository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category listing failed: %w", err)
	}

	return categories, nil
}

// ListItems returns every item with its owning category populated.
func (c *catalogService) ListItems(ctx context.Context) ([]models.ResolvedItem, error) {
	categories, err := c.catalogRepository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category listing failed: %w", err)
	}

	resolved := make([]models.ResolvedItem, 0)
	for _, category := range categories {
		bare := category
		bare.Items = nil
		for _, item := range category.Items {
			resolved = append(resolved, models.ResolvedItem{Item: item, Category: bare})
		}
	}

	return resolved, nil
}

func (c *catalogService) RenameCategory(ctx context.Context, session models.Session, categoryID, name string) error {
	if !session.Admin {
		return ErrUnauthorized
	}
	if !validCatalogName(name) {
		return ErrValidationBadName
	}

	if err := c.catalogRepository.RenameCategory(ctx, categoryID, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("category rename failed: %w", err)
	}

	return nil
}

func (c *catalogService) DeleteCategory(ctx context.Context, session models.Session, categoryID string) error {
	if !session.Admin {
		return ErrUnauthorized
	}

	if err := c.catalogRepository.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("category deletion failed: %w", err)
	}

	return nil
}

// CreateItem adds a new item to a category. The image URL is required.
func (c *catalogService) CreateItem(ctx context.Context, session models.Session, item models.Item) (models.Item, error) {
	if !session.Admin {
		return models.Item{}, ErrUnauthorized
	}
	if !validCatalogName(item.Name) {
		return models.Item{}, ErrValidationBadName
	}
	if !validators.URL(item.Image) {
		return models.Item{}, ErrValidationBadImageURL
	}
	if item.Stock < 0 {
		return models.Item{}, ErrValidationNegativeStock
	}

	item.Name = strings.TrimSpace(item.Name)
	created, err := c.catalogRepository.CreateItem(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("item creation failed: %w", err)
	}

	return created, nil
}

func (c *catalogService) RenameItem(ctx context.Context, session models.Session, itemID, name string) error {
	if !session.Admin {
		return ErrUnauthorized
	}
	if !validCatalogName(name) {
		return ErrValidationBadName
	}

	trimmed := strings.TrimSpace(name)
	if err := c.catalogRepository.UpdateItem(ctx, itemID, models.ItemUpdate{Name: &trimmed}); err != nil {
		return fmt.Errorf("item rename failed: %w", err)
	}

	return nil
}

func (c *catalogService) EditItemImage(ctx context.Context, session models.Session, itemID, image string) error {
	if !session.Admin {
		return ErrUnauthorized
	}
	if !validators.URL(image) {
		return ErrValidationBadImageURL
	}

	if err := c.catalogRepository.UpdateItem(ctx, itemID, models.ItemUpdate{Image: &image}); err != nil {
		return fmt.Errorf("item image update failed: %w", err)
	}

	return nil
}

func (c *catalogService) SetItemStock(ctx context.Context, session models.Session, itemID string, stock int) error {
	if !session.Admin {
		return ErrUnauthorized
	}
	if stock < 0 {
		return ErrValidationNegativeStock
	}

	if err := c.catalogRepository.UpdateItem(ctx, itemID, models.ItemUpdate{Stock: &stock}); err != nil {
		return fmt.Errorf("item stock update failed: %w", err)
	}

	return nil
}

// MoveItem reassigns an item to another category. Moving an item into the
// category it already belongs to is rejected as a conflict.
func (c *catalogService) MoveItem(ctx context.Context, session models.Session, itemID, categoryID string) error {
	if !session.Admin {
		return ErrUnauthorized
	}

	item, err := c.catalogRepository.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	if item.CategoryID == categoryID {
		return ErrSameCategory
	}

	if err := c.catalogRepository.MoveItem(ctx, itemID, categoryID); err != nil {
		return fmt.Errorf("item move failed: %w", err)
	}

	return nil
}

func (c *catalogService) DeleteItem(ctx context.Context, session models.Session, itemID string) error {
	if !session.Admin {
		return ErrUnauthorized
	}

	if err := c.catalogRepository.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("item deletion failed: %w", err)
	}

	return nil
}
