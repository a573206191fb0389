package service

import (
	"context"
	"fmt"
	"time"

	"github.com/feiyue-app/feiyue-server/internal/config"
	"github.com/feiyue-app/feiyue-server/internal/crypto"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/internal/utils"
	"github.com/feiyue-app/feiyue-server/internal/validators"
	"github.com/feiyue-app/feiyue-server/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the session token
// lifecycle, using a UserRepository for persistence, bcrypt for password
// hashing and the credential vault for PII encryption.
type authService struct {
	userRepository store.UserRepository

	// vault encrypts email/phone at rest and computes the blind digests
	// used for lookups over the encrypted columns.
	vault crypto.Vault

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued session token
	// remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, vault crypto.Vault, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		vault:          vault,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.SessionTokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// The registration payload is validated (name, email/phone shape, avatar
// URL, password strength with the user's own names and email as extra
// dictionary inputs), then transformed for persistence: the password is
// bcrypt-hashed, email and phone are encrypted and their blind digests
// computed. Returns the decrypted profile of the stored account or:
//   - a validation sentinel (400-class) when the payload is rejected.
//   - store.ErrEmailAlreadyExists / store.ErrPhoneAlreadyExists when the
//     digests collide with an existing account.
func (a *authService) Register(ctx context.Context, registration models.Registration) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if err := a.validateRegistration(registration); err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("registration rejected")
		return models.Profile{}, err
	}

	user := models.User{
		FirstName: registration.FirstName,
		LastName:  registration.LastName,
		Avatar:    registration.Avatar,
		Items:     []string{},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Profile{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = string(hash)

	if user.Email, err = a.vault.Encrypt(registration.Email); err != nil {
		return models.Profile{}, fmt.Errorf("email encryption failed: %w", err)
	}
	if user.Phone, err = a.vault.Encrypt(registration.Phone); err != nil {
		return models.Profile{}, fmt.Errorf("phone encryption failed: %w", err)
	}
	user.EmailDigest = a.vault.Digest(registration.Email)
	user.PhoneDigest = a.vault.Digest(registration.Phone)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.Profile{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return profileFromUser(registeredUser, a.vault), nil
}

func (a *authService) validateRegistration(registration models.Registration) error {
	if registration.FirstName == "" {
		return ErrValidationFirstNameRequired
	}
	if !validators.Email(registration.Email, a.vault) {
		return ErrValidationBadEmail
	}
	if !validators.Phone(registration.Phone, a.vault) {
		return ErrValidationBadPhone
	}
	if registration.Avatar != "" && !validators.URL(registration.Avatar) {
		return ErrValidationBadImageURL
	}

	fullName := registration.FirstName
	if registration.LastName != "" {
		fullName += " " + registration.LastName
	}
	return validators.Password(registration.Password, []string{
		registration.FirstName, registration.LastName, fullName, registration.Email,
	})
}

// Login authenticates an account by a single identifier that may be either
// an email address or a phone number.
//
// The identifier is digested and looked up against both blind index
// columns; the password is compared against the stored bcrypt hash.
// Returns the full user record or:
//   - ErrInvalidDataProvided when identifier or password is empty.
//   - store.ErrNoUserWasFound when no account matches the identifier.
//   - ErrWrongPassword when the password comparison fails.
func (a *authService) Login(ctx context.Context, identifier, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if identifier == "" || password == "" {
		log.Error().Str("func", "*authService.Login").Msg("empty identifier or password")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByDigest(ctx, a.vault.Digest(identifier))
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by identifier failed")
		return models.User{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Error().
			Str("func", "*authService.Login").
			Str("id", foundUser.UserID).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateSessionToken issues a signed session JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateSessionToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateSessionToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseSessionToken validates and parses a raw session JWT string.
//
// Any validation failure (expired, wrong issuer, wrong kind, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseSessionToken(ctx context.Context, tokenString string) (models.Session, error) {
	session, err := utils.ValidateSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Session{}, ErrTokenIsExpiredOrInvalid
	}

	return session, nil
}
