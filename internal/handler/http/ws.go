package http

import (
	"net/http"

	"github.com/feiyue-app/feiyue-server/internal/logger"
)

// ordersSocket upgrades an admin session to the orders broadcast socket.
// Auth and the admin gate have already run as middleware; from here the
// connection belongs to the hub.
func (h *Handler) ordersSocket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.hub.Join(w, r); err != nil {
		log.Err(err).Str("func", "*Handler.ordersSocket").Msg("socket join failed")
		// Upgrade already wrote its own error response
		return
	}

	log.Debug().Msg("admin joined orders socket")
}
