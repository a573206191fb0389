package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/jackc/pgerrcode"
)

func newTestCatalogRepo(t *testing.T) (*catalogRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &catalogRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateCategory_Success(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(sqlmock.AnyArg(), "Snacks").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	created, err := repo.CreateCategory(context.Background(), models.Category{Name: "Snacks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CategoryID == "" {
		t.Error("expected a generated category_id")
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO categories").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateCategory(context.Background(), models.Category{Name: "Snacks"})
	if !errors.Is(err, ErrCategoryAlreadyExists) {
		t.Fatalf("expected ErrCategoryAlreadyExists, got %v", err)
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT category_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetCategory(context.Background(), "missing")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestGetCategory_PopulatesItems(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT category_id").
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "name", "created_at"}).
			AddRow("c-1", "Snacks", now))
	mock.ExpectQuery("SELECT item_id").
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "name", "image", "stock", "category_id", "created_at"}).
			AddRow("i-1", "Chips", "https://cdn/chips.png", 5, "c-1", now))

	category, err := repo.GetCategory(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(category.Items) != 1 || category.Items[0].Name != "Chips" {
		t.Errorf("expected one item Chips, got %v", category.Items)
	}
}

func TestListCategories_GroupsItems(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT category_id").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "name", "created_at"}).
			AddRow("c-1", "Snacks", now).
			AddRow("c-2", "Drinks", now))
	mock.ExpectQuery("SELECT item_id").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "name", "image", "stock", "category_id", "created_at"}).
			AddRow("i-1", "Chips", "", 5, "c-1", now).
			AddRow("i-2", "Tea", "", 3, "c-2", now).
			AddRow("i-3", "Coffee", "", 0, "c-2", now))

	categories, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if len(categories[0].Items) != 1 {
		t.Errorf("expected 1 item in first category, got %d", len(categories[0].Items))
	}
	if len(categories[1].Items) != 2 {
		t.Errorf("expected 2 items in second category, got %d", len(categories[1].Items))
	}
}

func TestRenameCategory_NotFound(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE categories").
		WithArgs("missing", "Sweets").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RenameCategory(context.Background(), "missing", "Sweets")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateItem_UnknownCategory(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO items").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateItem(context.Background(), models.Item{Name: "Chips", CategoryID: "missing"})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateItem_DuplicateName(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO items").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateItem(context.Background(), models.Item{Name: "Chips", CategoryID: "c-1"})
	if !errors.Is(err, ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}
}

func TestGetItems_EmptyInput(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()
	_ = mock

	items, err := repo.GetItems(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %v", items)
	}
}

func TestUpdateItem_PartialFields(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	stock := 7
	mock.ExpectExec("UPDATE items SET stock").
		WithArgs(stock, "i-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateItem(context.Background(), "i-1", models.ItemUpdate{Stock: &stock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateItem_EmptyUpdateIsNoOp(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	if err := repo.UpdateItem(context.Background(), "i-1", models.ItemUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries expected: %v", err)
	}
}

func TestUpdateItem_NegativeStock(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	stock := -1
	mock.ExpectExec("UPDATE items").
		WillReturnError(pgError(pgerrcode.CheckViolation))

	err := repo.UpdateItem(context.Background(), "i-1", models.ItemUpdate{Stock: &stock})
	if !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	name := "Crisps"
	mock.ExpectExec("UPDATE items").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateItem(context.Background(), "missing", models.ItemUpdate{Name: &name})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestMoveItem_UnknownCategory(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE items").
		WithArgs("i-1", "missing").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	err := repo.MoveItem(context.Background(), "i-1", "missing")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteItem_MissingIsNoOp(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM items").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteItem(context.Background(), "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
