package store

import "github.com/feiyue-app/feiyue-server/internal/logger"

// Storages bundles every repository behind one value for wiring into the
// service layer.
type Storages struct {
	UserRepository    UserRepository
	CatalogRepository CatalogRepository
	OrderRepository   OrderRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		CatalogRepository: NewCatalogRepository(db, logger),
		OrderRepository:   NewOrderRepository(db, logger),
	}
}
