package service

import (
	"github.com/feiyue-app/feiyue-server/internal/config"
	"github.com/feiyue-app/feiyue-server/internal/crypto"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	CatalogService CatalogService
	OrderService   OrderService
}

func NewServices(storages *store.Storages, vault crypto.Vault, publisher Publisher, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, vault, cfg.Auth, logger),
		UserService:    NewUserService(storages.UserRepository, storages.CatalogRepository, vault, logger),
		CatalogService: NewCatalogService(storages.CatalogRepository, logger),
		OrderService:   NewOrderService(storages, publisher, cfg.Auth, logger),
	}
}
