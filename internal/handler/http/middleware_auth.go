package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/service"
	"github.com/feiyue-app/feiyue-server/internal/utils"
)

// sessionCookie is the cookie carrying the session token for browser
// clients. API clients may send the same token as a bearer header instead.
const sessionCookie = "session"

// auth is an HTTP middleware that enforces session authentication.
//
// The session token is taken from the "session" cookie when present,
// falling back to the "Authorization: Bearer" header. On success the
// verified [models.Session] is stored in the request context under
// [utils.SessionCtxKey] before delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when no token is
// provided, the header cannot be parsed, or the token fails verification.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			respondError(w, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx := r.Context()
		session, err := h.services.AuthService.ParseSessionToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing session token")
			respondError(w, err)
			return
		}

		// Store the verified session in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.SessionCtxKey, session)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly gates a subtree to sessions carrying the admin claim. It must
// run after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok || !session.Admin {
			logger.FromRequest(r).Error().Str("user_id", session.UserID).Msg("admin-only route denied")
			respondError(w, service.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sessionTokenFromRequest extracts the raw session token, preferring the
// session cookie over the Authorization header.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoSessionToken
	}

	return getTokenFromAuthHeader(authHeader)
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form
// "Authorization: <scheme> <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
