package http

import (
	"github.com/feiyue-app/feiyue-server/internal/broadcast"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *broadcast.Hub

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *broadcast.Hub, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		logger:   logger,
	}
}
