package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/jackc/pgerrcode"
)

func newTestOrderRepo(t *testing.T) (*orderRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &orderRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestReplaceOrder_Success(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	now := time.Now()
	items := []string{"i-1", "i-2"}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO redeemed_claims").
		WithArgs("jti-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT items, history").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"items", "history"}).
			AddRow([]byte(`["i-1","i-2"]`), []byte(`[["i-0"]]`)))
	mock.ExpectExec("DELETE FROM orders").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), "u-1", []byte(`["i-1","i-2"]`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectExec("UPDATE users").
		WithArgs("u-1", []byte(`[["i-0"],["i-1","i-2"]]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := repo.ReplaceOrder(context.Background(), "u-1", "jti-1", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OrderID == "" {
		t.Error("expected a generated order_id")
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 items, got %v", order.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceOrder_ClaimAlreadyRedeemed(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO redeemed_claims").
		WithArgs("jti-1", "u-1").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.ReplaceOrder(context.Background(), "u-1", "jti-1", []string{"i-1"})
	if !errors.Is(err, ErrClaimAlreadyRedeemed) {
		t.Fatalf("expected ErrClaimAlreadyRedeemed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceOrder_UserNotFound(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO redeemed_claims").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT items, history").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.ReplaceOrder(context.Background(), "missing", "jti-1", []string{"i-1"})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestReplaceOrder_BeginError(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	_, err := repo.ReplaceOrder(context.Background(), "u-1", "jti-1", nil)
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestReplaceOrder_CommitError(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO redeemed_claims").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT items, history").
		WillReturnRows(sqlmock.NewRows([]string{"items", "history"}).
			AddRow([]byte(`[]`), []byte(`[]`)))
	mock.ExpectExec("DELETE FROM orders").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	_, err := repo.ReplaceOrder(context.Background(), "u-1", "jti-1", []string{"i-1"})
	if !errors.Is(err, ErrCommitingTransaction) {
		t.Fatalf("expected ErrCommitingTransaction, got %v", err)
	}
}

func TestDeleteOrder_MissingIsNoOp(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM orders").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteOrder(context.Background(), "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListOrders_Success(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"order_id", "user_id", "items", "created_at"}).
		AddRow("o-1", "u-1", []byte(`["i-1"]`), now).
		AddRow("o-2", "u-2", []byte(`["i-2","i-3"]`), now)

	mock.ExpectQuery("SELECT order_id").
		WillReturnRows(rows)

	orders, err := repo.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[1].Items[1] != "i-3" {
		t.Errorf("expected item i-3, got %v", orders[1].Items)
	}
}

func TestListOrders_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestOrderRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT order_id").
		WillReturnError(errors.New("db failure"))

	_, err := repo.ListOrders(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}
