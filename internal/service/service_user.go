package service

import (
	"context"
	"fmt"

	"github.com/feiyue-app/feiyue-server/internal/crypto"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/internal/validators"
	"github.com/feiyue-app/feiyue-server/models"
	"golang.org/x/crypto/bcrypt"
)

const defaultHistoryPerPage = 10

// userService is the concrete implementation of UserService: profile
// reads, the closed set of profile mutations, selection writes and history
// pagination. Profile mutations are permitted to the owner or an admin;
// listing and deleting accounts is admin only.
type userService struct {
	userRepository    store.UserRepository
	catalogRepository store.CatalogRepository
	vault             crypto.Vault

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, catalogRepository store.CatalogRepository, vault crypto.Vault, logger *logger.Logger) UserService {
	return &userService{
		userRepository:    userRepository,
		catalogRepository: catalogRepository,
		vault:             vault,
		logger:            logger,
	}
}

// ownerOrAdmin reports whether the session may act on the given account.
func ownerOrAdmin(session models.Session, userID string) bool {
	return session.Admin || session.UserID == userID
}

func (u *userService) GetProfile(ctx context.Context, session models.Session, userID string) (models.Profile, error) {
	if !ownerOrAdmin(session, userID) {
		return models.Profile{}, ErrUnauthorized
	}

	user, err := u.userRepository.GetUser(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return profileFromUser(user, u.vault), nil
}

// EditName replaces the account's display name. The combined name is split
// into first and last parts at the boundary.
func (u *userService) EditName(ctx context.Context, session models.Session, userID, fullName string) error {
	if !ownerOrAdmin(session, userID) {
		return ErrUnauthorized
	}

	first, last := models.SplitFullName(fullName)
	if first == "" {
		return ErrValidationFirstNameRequired
	}

	if err := u.userRepository.UpdateName(ctx, userID, first, last); err != nil {
		return fmt.Errorf("name update failed: %w", err)
	}

	return nil
}

func (u *userService) EditEmail(ctx context.Context, session models.Session, userID, email string) error {
	if !ownerOrAdmin(session, userID) {
		return ErrUnauthorized
	}
	if !validators.Email(email, u.vault) {
		return ErrValidationBadEmail
	}

	encrypted, err := u.vault.Encrypt(email)
	if err != nil {
		return fmt.Errorf("email encryption failed: %w", err)
	}

	if err := u.userRepository.UpdateEmail(ctx, userID, encrypted, u.vault.Digest(email)); err != nil {
		return fmt.Errorf("email update failed: %w", err)
	}

	return nil
}

func (u *userService) EditPhone(ctx context.Context, session models.Session, userID, phone string) error {
	if !ownerOrAdmin(session, userID) {
		return ErrUnauthorized
	}
	if !validators.Phone(phone, u.vault) {
		return ErrValidationBadPhone
	}

	encrypted, err := u.vault.Encrypt(phone)
	if err != nil {
		return fmt.Errorf("phone encryption failed: %w", err)
	}

	if err := u.userRepository.UpdatePhone(ctx, userID, encrypted, u.vault.Digest(phone)); err != nil {
		return fmt.Errorf("phone update failed: %w", err)
	}

	return nil
}

// EditPassword verifies the old password before storing a new hash. The
// stored hash is left untouched when verification or strength checks fail.
func (u *userService) EditPassword(ctx context.Context, session models.Session, userID, oldPassword, newPassword string) error {
	if !ownerOrAdmin(session, userID) {
		return ErrUnauthorized
	}

	user, err := u.userRepository.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	// the own-identity blacklist matches registration: name parts plus the
	// account email
	userInputs := []string{user.FirstName, user.LastName, user.FullName()}
	if email, decErr := u.vault.Decrypt(user.Email); decErr == nil {
		userInputs = append(userInputs, email)
	}
	if err := validators.Password(newPassword, userInputs); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := u.userRepository.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// UpdateSelection replaces the live selection. The new selection must stay
// within [models.MaxSelectedItems], list every item at most once and only
// reference items that exist in the catalog.
func (u *userService) UpdateSelection(ctx context.Context, session models.Session, userID string, items []string) error {
	log := logger.FromContext(ctx)

	if !ownerOrAdmin(session, userID) {
		return ErrUnauthorized
	}
	if len(items) > models.MaxSelectedItems {
		return ErrSelectionTooLong
	}
	if len(uniqueStrings(items)) != len(items) {
		return ErrDuplicateItems
	}

	if len(items) > 0 {
		found, err := u.catalogRepository.GetItems(ctx, items)
		if err != nil {
			return fmt.Errorf("selection item lookup failed: %w", err)
		}
		if len(found) != len(items) {
			log.Error().
				Str("func", "*userService.UpdateSelection").
				Strs("items", items).
				Msg("selection references unknown items")
			return ErrUnknownItems
		}
	}

	if err := u.userRepository.UpdateSelection(ctx, userID, items); err != nil {
		return fmt.Errorf("selection update failed: %w", err)
	}

	return nil
}

// History returns pages of past selection snapshots, newest first.
// Page numbers start at 1; non-positive page and perPage values fall back
// to the defaults.
func (u *userService) History(ctx context.Context, session models.Session, userID string, page, perPage int) ([][]string, error) {
	if !ownerOrAdmin(session, userID) {
		return nil, ErrUnauthorized
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultHistoryPerPage
	}

	user, err := u.userRepository.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	history := user.History
	// stored oldest-first; serve newest-first
	reversed := make([][]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		reversed = append(reversed, history[i])
	}

	start := (page - 1) * perPage
	if start >= len(reversed) {
		return [][]string{}, nil
	}
	end := start + perPage
	if end > len(reversed) {
		end = len(reversed)
	}

	return reversed[start:end], nil
}

func (u *userService) ListUsers(ctx context.Context, session models.Session) ([]models.Profile, error) {
	if !session.Admin {
		return nil, ErrUnauthorized
	}

	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	profiles := make([]models.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, profileFromUser(user, u.vault))
	}

	return profiles, nil
}

// DeleteUser removes an account. Admin only; deleting a missing account is
// a no-op.
func (u *userService) DeleteUser(ctx context.Context, session models.Session, userID string) error {
	if !session.Admin {
		return ErrUnauthorized
	}

	if err := u.userRepository.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}

// profileFromUser builds the caller-facing view of a user record,
// decrypting the PII fields. Fields that fail to decrypt are served empty
// rather than failing the whole read.
func profileFromUser(user models.User, vault crypto.Vault) models.Profile {
	email, _ := vault.Decrypt(user.Email)
	phone, _ := vault.Decrypt(user.Phone)

	items := user.Items
	if items == nil {
		items = []string{}
	}

	return models.Profile{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Email:     email,
		Phone:     phone,
		Admin:     user.Admin,
		Avatar:    user.Avatar,
		Items:     items,
		CreatedAt: user.CreatedAt,
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
