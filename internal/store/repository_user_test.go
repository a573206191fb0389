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
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func pgUniqueError(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func userRows(user models.User, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows(strings.Split(userColumns, ", ")).
		AddRow(user.UserID, user.FirstName, user.LastName, user.Admin,
			user.Email, user.Phone, user.EmailDigest, user.PhoneDigest,
			user.PasswordHash, user.Avatar, []byte(`["i-1"]`), []byte(`[["i-2"]]`), createdAt)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		FirstName:    "Mei",
		LastName:     "Tan",
		Email:        "enc-email",
		Phone:        "enc-phone",
		EmailDigest:  "digest-e",
		PhoneDigest:  "digest-p",
		PasswordHash: "hash",
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(now)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID == "" {
		t.Error("expected a generated user_id")
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, created.CreatedAt)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgUniqueError("users_email_digest_key"))

	_, err := repo.CreateUser(context.Background(), models.User{EmailDigest: "digest-e"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_DuplicatePhone(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgUniqueError("users_phone_digest_key"))

	_, err := repo.CreateUser(context.Background(), models.User{PhoneDigest: "digest-p"})
	if !errors.Is(err, ErrPhoneAlreadyExists) {
		t.Fatalf("expected ErrPhoneAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestGetUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{UserID: "u-1", FirstName: "Mei", LastName: "Tan"}

	mock.ExpectQuery("SELECT user_id").
		WithArgs("u-1").
		WillReturnRows(userRows(user, time.Now()))

	found, err := repo.GetUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.FirstName != "Mei" {
		t.Errorf("expected first name Mei, got %s", found.FirstName)
	}
	if len(found.Items) != 1 || found.Items[0] != "i-1" {
		t.Errorf("expected selection [i-1], got %v", found.Items)
	}
	if len(found.History) != 1 {
		t.Errorf("expected one history entry, got %v", found.History)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUser(context.Background(), "missing")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByDigest_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{UserID: "u-1", EmailDigest: "digest-e"}

	mock.ExpectQuery("SELECT user_id").
		WithArgs("digest-e").
		WillReturnRows(userRows(user, time.Now()))

	found, err := repo.FindUserByDigest(context.Background(), "digest-e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != "u-1" {
		t.Errorf("expected user u-1, got %s", found.UserID)
	}
}

func TestFindUserByDigest_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByDigest(context.Background(), "unknown")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateEmail_DuplicateDigest(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("u-1", "enc-email", "digest-e").
		WillReturnError(pgUniqueError("users_email_digest_key"))

	err := repo.UpdateEmail(context.Background(), "u-1", "enc-email", "digest-e")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdateName_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("missing", "Mei", "Tan").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateName(context.Background(), "missing", "Mei", "Tan")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateSelection_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("u-1", []byte(`["i-1","i-2"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateSelection(context.Background(), "u-1", []string{"i-1", "i-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateSelection_NilBecomesEmptyArray(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("u-1", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateSelection(context.Background(), "u-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := userRows(models.User{UserID: "u-1"}, time.Now()).
		AddRow("u-2", "", "", false, "", "", "", "", "", "", []byte(`[]`), []byte(`[]`), time.Now())

	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(rows)

	users, err := repo.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestDeleteUser_MissingIsNoOp(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteUser(context.Background(), "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
