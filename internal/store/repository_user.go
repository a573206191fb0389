package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and the closed set of profile
// mutations against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// uniqueViolationToError maps a unique-violation error on the users table
// to the sentinel for the specific duplicated field.
func uniqueViolationToError(err error) error {
	switch postgresConstraint(err) {
	case "users_email_digest_key":
		return ErrEmailAlreadyExists
	case "users_phone_digest_key":
		return ErrPhoneAlreadyExists
	default:
		return fmt.Errorf("unexpected unique violation: %w", err)
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - unique_violation (23505) on email/phone digests →
//     [ErrEmailAlreadyExists] / [ErrPhoneAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}

	items, err := marshalItems(user.Items)
	if err != nil {
		return models.User{}, err
	}
	history, err := marshalHistory(user.History)
	if err != nil {
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, createUser,
		user.UserID, user.FirstName, user.LastName, user.Admin,
		user.Email, user.Phone, user.EmailDigest, user.PhoneDigest,
		user.PasswordHash, user.Avatar, items, history)

	if err := row.Scan(&user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: user insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, uniqueViolationToError(err)
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// GetUser retrieves a user record by its identifier.
//
// A missing record yields [ErrNoUserWasFound].
func (r *userRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	return r.queryOne(ctx, getUserByID, userID)
}

// FindUserByDigest retrieves a user record whose email or phone blind
// digest matches the one provided. Used by the login path, where the
// identifier may be either an email address or a phone number.
func (r *userRepository) FindUserByDigest(ctx context.Context, digest string) (models.User, error) {
	return r.queryOne(ctx, findUserByDigest, digest)
}

func (r *userRepository) queryOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.queryOne").Msg("error: scanning user failed")
		return models.User{}, err
	}

	return user, nil
}

// UpdateName updates the split display name parts.
func (r *userRepository) UpdateName(ctx context.Context, userID, firstName, lastName string) error {
	return r.exec(ctx, updateUserName, userID, firstName, lastName)
}

// UpdateEmail replaces the encrypted email and its digest.
func (r *userRepository) UpdateEmail(ctx context.Context, userID, encryptedEmail, emailDigest string) error {
	return r.exec(ctx, updateUserEmail, userID, encryptedEmail, emailDigest)
}

// UpdatePhone replaces the encrypted phone and its digest.
func (r *userRepository) UpdatePhone(ctx context.Context, userID, encryptedPhone, phoneDigest string) error {
	return r.exec(ctx, updateUserPhone, userID, encryptedPhone, phoneDigest)
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.exec(ctx, updateUserPassword, userID, passwordHash)
}

// UpdateSelection replaces the live selection document.
func (r *userRepository) UpdateSelection(ctx context.Context, userID string, items []string) error {
	data, err := marshalItems(items)
	if err != nil {
		return err
	}
	return r.exec(ctx, updateUserSelection, userID, data)
}

// exec runs a single-row UPDATE and maps its outcome: zero affected rows →
// [ErrNoUserWasFound], unique violations → field-specific sentinels.
func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.exec").Msg("error: user update failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return uniqueViolationToError(err)
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ListUsers returns all user records ordered by creation time.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: listing users failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return users, nil
}

// DeleteUser removes an account by ID. Missing IDs are a silent no-op so
// the operation is idempotent.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteUser, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: user delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var items, history []byte

	if err := row.Scan(
		&user.UserID, &user.FirstName, &user.LastName, &user.Admin,
		&user.Email, &user.Phone, &user.EmailDigest, &user.PhoneDigest,
		&user.PasswordHash, &user.Avatar, &items, &history, &user.CreatedAt,
	); err != nil {
		return models.User{}, err
	}

	var err error
	if user.Items, err = unmarshalItems(items); err != nil {
		return models.User{}, err
	}
	if user.History, err = unmarshalHistory(history); err != nil {
		return models.User{}, err
	}

	return user, nil
}
