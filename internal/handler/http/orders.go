package http

import (
	"encoding/json"
	"net/http"

	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/utils"
	"github.com/go-chi/chi/v5"
)

// orderClaimHeader carries the claim token on inspect and redeem calls,
// filled by the scanner client from the decoded QR payload.
const orderClaimHeader = "X-Order-Claim"

type mintClaimRequest struct {
	// UserID lets an admin mint on behalf of another account. Empty means
	// the session's own account.
	UserID string `json:"userID,omitempty"`
}

func (h *Handler) mintClaim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	var body mintClaimRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondBadJSON(w)
			return
		}
	}

	minted, err := h.services.OrderService.MintClaim(r.Context(), session, body.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.mintClaim").Msg("claim minting failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, minted)
}

func (h *Handler) inspectClaim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	tokenString := r.Header.Get(orderClaimHeader)
	if tokenString == "" {
		log.Err(ErrNoOrderClaim).Send()
		respondError(w, ErrNoOrderClaim)
		return
	}

	preview, err := h.services.OrderService.InspectClaim(r.Context(), session, tokenString)
	if err != nil {
		log.Err(err).Str("func", "*Handler.inspectClaim").Msg("claim inspection failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, preview)
}

func (h *Handler) redeemClaim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	tokenString := r.Header.Get(orderClaimHeader)
	if tokenString == "" {
		log.Err(ErrNoOrderClaim).Send()
		respondError(w, ErrNoOrderClaim)
		return
	}

	view, err := h.services.OrderService.RedeemClaim(r.Context(), session, tokenString)
	if err != nil {
		log.Err(err).Str("func", "*Handler.redeemClaim").Msg("claim redemption failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, view)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	views, err := h.services.OrderService.ListOpenOrders(r.Context(), session)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listOrders").Msg("order listing failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, views)
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, _ := utils.GetSessionFromContext(r.Context())

	if err := h.services.OrderService.CompleteOrder(r.Context(), session, chi.URLParam(r, "id")); err != nil {
		log.Err(err).Str("func", "*Handler.completeOrder").Msg("order completion failed")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, nil)
}
