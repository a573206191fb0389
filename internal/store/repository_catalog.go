package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// catalogRepository is the PostgreSQL-backed implementation of
// [CatalogRepository], covering the "categories" and "items" tables.
type catalogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCatalogRepository constructs a [CatalogRepository] backed by the
// provided database connection and logger.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCategory persists a new category.
//
// Error handling:
//   - unique_violation on the case-insensitive name index →
//     [ErrCategoryAlreadyExists].
func (r *catalogRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	if category.CategoryID == "" {
		category.CategoryID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, createCategory, category.CategoryID, category.Name)
	if err := row.Scan(&category.CreatedAt); err != nil {
		log.Err(err).Str("func", "*catalogRepository.CreateCategory").Msg("error: category insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Category{}, ErrCategoryAlreadyExists
		default:
			return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return category, nil
}

// GetCategory retrieves a category with its items populated, items ordered
// by creation time.
func (r *catalogRepository) GetCategory(ctx context.Context, categoryID string) (models.Category, error) {
	log := logger.FromContext(ctx)

	var category models.Category
	row := r.db.QueryRowContext(ctx, getCategoryByID, categoryID)
	if err := row.Scan(&category.CategoryID, &category.Name, &category.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*catalogRepository.GetCategory").Msg("error: scanning category failed")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	items, err := r.queryItems(ctx, sq.Eq{"category_id": categoryID})
	if err != nil {
		return models.Category{}, err
	}
	category.Items = items

	return category, nil
}

// ListCategories returns all categories with their items populated.
func (r *catalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCategories)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListCategories").Msg("error: listing categories failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	index := make(map[string]int)
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.CategoryID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		category.Items = []models.Item{}
		index[category.CategoryID] = len(categories)
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	items, err := r.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if i, ok := index[item.CategoryID]; ok {
			categories[i].Items = append(categories[i].Items, item)
		}
	}

	return categories, nil
}

// RenameCategory updates a category name.
//
// Error handling:
//   - zero affected rows → [ErrCategoryNotFound].
//   - unique_violation → [ErrCategoryAlreadyExists].
func (r *catalogRepository) RenameCategory(ctx context.Context, categoryID, name string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, renameCategory, categoryID, name)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.RenameCategory").Msg("error: category rename failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrCategoryAlreadyExists
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category. Items under it are removed by the
// ON DELETE CASCADE on items.category_id. Missing IDs are a no-op.
func (r *catalogRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteCategory, categoryID); err != nil {
		log.Err(err).Str("func", "*catalogRepository.DeleteCategory").Msg("error: category delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// CreateItem persists a new item under its category.
//
// Error handling:
//   - unique_violation on the case-insensitive name index →
//     [ErrItemAlreadyExists].
//   - foreign_key_violation on category_id → [ErrCategoryNotFound].
func (r *catalogRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, createItem, item.ItemID, item.Name, item.Image, item.Stock, item.CategoryID)
	if err := row.Scan(&item.CreatedAt); err != nil {
		log.Err(err).Str("func", "*catalogRepository.CreateItem").Msg("error: item insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Item{}, ErrItemAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Item{}, ErrCategoryNotFound
		default:
			return models.Item{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return item, nil
}

// GetItem retrieves a single item by ID.
func (r *catalogRepository) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	log := logger.FromContext(ctx)

	var item models.Item
	row := r.db.QueryRowContext(ctx, getItemByID, itemID)
	if err := row.Scan(&item.ItemID, &item.Name, &item.Image, &item.Stock, &item.CategoryID, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*catalogRepository.GetItem").Msg("error: scanning item failed")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// GetItems retrieves the items matching the given IDs. Missing IDs are
// simply absent from the result; the caller decides whether that is an
// error.
func (r *catalogRepository) GetItems(ctx context.Context, itemIDs []string) ([]models.Item, error) {
	if len(itemIDs) == 0 {
		return []models.Item{}, nil
	}

	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getItemsByIDs, itemIDs)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.GetItems").Msg("error: querying items failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItems returns all items ordered by category and creation time.
func (r *catalogRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listItems)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListItems").Msg("error: listing items failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem applies a partial edit to an item. The UPDATE statement is
// built dynamically from the non-nil fields of update.
//
// Error handling mirrors CreateItem; zero affected rows →
// [ErrItemNotFound]; an empty update is a no-op.
func (r *catalogRepository) UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) error {
	log := logger.FromContext(ctx)

	builder := sq.Update("items").
		Where(sq.Eq{"item_id": itemID}).
		PlaceholderFormat(sq.Dollar)

	changed := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		changed = true
	}
	if update.Image != nil {
		builder = builder.Set("image", *update.Image)
		changed = true
	}
	if update.Stock != nil {
		builder = builder.Set("stock", *update.Stock)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.UpdateItem").Msg("error: item update failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrItemAlreadyExists
		case pgerrcode.CheckViolation:
			return ErrNegativeStock
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// MoveItem reassigns an item to another category.
//
// Error handling:
//   - foreign_key_violation → [ErrCategoryNotFound].
//   - zero affected rows → [ErrItemNotFound].
func (r *catalogRepository) MoveItem(ctx context.Context, itemID, categoryID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, moveItem, itemID, categoryID)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.MoveItem").Msg("error: item move failed")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrCategoryNotFound
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// DeleteItem removes an item. Missing IDs are a no-op.
func (r *catalogRepository) DeleteItem(ctx context.Context, itemID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteItem, itemID); err != nil {
		log.Err(err).Str("func", "*catalogRepository.DeleteItem").Msg("error: item delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// queryItems runs a filtered item SELECT built with squirrel.
func (r *catalogRepository) queryItems(ctx context.Context, where sq.Sqlizer) ([]models.Item, error) {
	query, args, err := sq.Select("item_id", "name", "image", "stock", "category_id", "created_at").
		From("items").
		Where(where).
		OrderBy("created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	items := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Image, &item.Stock, &item.CategoryID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}
