package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	profile, err := h.services.UserService.GetProfile(r.Context(), session, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getProfile").Msg("profile lookup failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, profile)
}

type editNameRequest struct {
	FullName string `json:"fullName"`
}

func (h *Handler) editName(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	var body editNameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.UserService.EditName(r.Context(), session, userID, body.FullName); err != nil {
		log.Err(err).Str("func", "*Handler.editName").Msg("name update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

type editEmailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) editEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	var body editEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.UserService.EditEmail(r.Context(), session, userID, body.Email); err != nil {
		log.Err(err).Str("func", "*Handler.editEmail").Msg("email update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

type editPhoneRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) editPhone(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	var body editPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.UserService.EditPhone(r.Context(), session, userID, body.Phone); err != nil {
		log.Err(err).Str("func", "*Handler.editPhone").Msg("phone update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

type editPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) editPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	var body editPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.UserService.EditPassword(r.Context(), session, userID, body.OldPassword, body.NewPassword); err != nil {
		log.Err(err).Str("func", "*Handler.editPassword").Msg("password update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

type selectionRequest struct {
	Items []string `json:"items"`
}

func (h *Handler) updateSelection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	var body selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.services.UserService.UpdateSelection(r.Context(), session, userID, body.Items); err != nil {
		log.Err(err).Str("func", "*Handler.updateSelection").Msg("selection update failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	history, err := h.services.UserService.History(r.Context(), session, userID, page, perPage)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getHistory").Msg("history lookup failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, history)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	profiles, err := h.services.UserService.ListUsers(r.Context(), session)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("user listing failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, profiles)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())
	userID := chi.URLParam(r, "id")

	if err := h.services.UserService.DeleteUser(r.Context(), session, userID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteUser").Msg("user deletion failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}
