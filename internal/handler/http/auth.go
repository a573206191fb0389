package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var registration models.Registration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		respondBadJSON(w)
		return
	}

	profile, err := h.services.AuthService.Register(ctx, registration)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("user registration failed")
		respondError(w, err)
		return
	}

	log.Info().Str("id", profile.UserID).Msg("user registered")
	respond(w, http.StatusCreated, profile)
}

type loginRequest struct {
	// Identifier is the account's email address or phone number.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials loginRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		respondBadJSON(w)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials.Identifier, credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		respondError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateSessionToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("creation of token failed")
		respondError(w, err)
		return
	}

	log.Debug().Str("id", foundUser.UserID).Msg("user successfully logged in")

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", "Bearer "+token.SignedString)

	respond(w, http.StatusOK, models.UserDisplay{
		UserID:   foundUser.UserID,
		FullName: foundUser.FullName(),
		Avatar:   foundUser.Avatar,
	})
}

// logout clears the session cookie. Tokens are not revoked server-side;
// a copied token stays valid until it expires.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond(w, http.StatusOK, nil)
}
