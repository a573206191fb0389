package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/feiyue-app/feiyue-server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, malformed structure, wrong issuer, wrong kind, or expiry.
// Callers must treat it as unauthenticated.
var ErrInvalidToken = errors.New("token is expired or invalid")

// GenerateSessionToken creates a signed HMAC-SHA256 session token for the
// given user.
//
// The token carries the standard iss/sub/iat/exp claims plus the user's
// display name, admin flag and avatar, and a "kind" discriminator so that a
// session token can never be presented as an order claim.
//
// tokenDuration may be negative to mint an already-expired token; this is
// used by expiry-boundary tests. A zero duration is rejected.
func GenerateSessionToken(issuer string, user models.User, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" || user.UserID == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Kind:     models.TokenKindSession,
		FullName: user.FullName(),
		Admin:    user.Admin,
		Avatar:   user.Avatar,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{SignedString: tokenString, ExpiresAt: expiresAt}, nil
}

// ValidateSessionToken verifies a raw session token string and extracts the
// caller identity.
//
// Verification fails closed: signature, issuer, expiry and kind are all
// checked and any failure is normalised to [ErrInvalidToken].
func ValidateSessionToken(tokenString, signKey, issuer string) (models.Session, error) {
	var claims models.SessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Session{}, ErrInvalidToken
	}

	if claims.Kind != models.TokenKindSession || claims.Subject == "" {
		return models.Session{}, ErrInvalidToken
	}

	return models.Session{
		UserID:   claims.Subject,
		FullName: claims.FullName,
		Admin:    claims.Admin,
		Avatar:   claims.Avatar,
	}, nil
}

// GenerateOrderClaimToken creates a signed HMAC-SHA256 order claim token
// embedding the user's selection snapshot.
//
// Each claim receives a fresh jti; redemption consumes the jti exactly
// once. Two claims minted over the same snapshot are independent but
// equally valid tokens.
func GenerateOrderClaimToken(issuer, userID string, items []string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" || userID == "" {
		return models.Token{}, errors.New("invalid params for generating order claim token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &models.OrderClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Kind:  models.TokenKindOrderClaim,
		Items: items,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing order claim token: %w", err)
	}

	return models.Token{SignedString: tokenString, ExpiresAt: expiresAt}, nil
}

// ValidateOrderClaimToken verifies a raw order claim token string and
// extracts its payload. Any verification failure is normalised to
// [ErrInvalidToken].
func ValidateOrderClaimToken(tokenString, signKey, issuer string) (models.OrderClaim, error) {
	var claims models.OrderClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.OrderClaim{}, ErrInvalidToken
	}

	if claims.Kind != models.TokenKindOrderClaim || claims.Subject == "" || claims.ID == "" {
		return models.OrderClaim{}, ErrInvalidToken
	}

	return models.OrderClaim{
		UserID: claims.Subject,
		Items:  claims.Items,
		JTI:    claims.ID,
	}, nil
}
