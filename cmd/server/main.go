package main

import (
	"context"
	"fmt"

	"github.com/feiyue-app/feiyue-server/internal/broadcast"
	"github.com/feiyue-app/feiyue-server/internal/config"
	"github.com/feiyue-app/feiyue-server/internal/crypto"
	handlerhttp "github.com/feiyue-app/feiyue-server/internal/handler/http"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/server"
	"github.com/feiyue-app/feiyue-server/internal/service"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("feiyue-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	vault, err := crypto.NewVault(cfg.Vault.EncryptionKey, cfg.Vault.DigestKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault")
	}

	storages := store.NewStorages(db, log)
	hub := broadcast.NewHub(log)
	services := service.NewServices(storages, vault, hub, *cfg, log)
	handler := handlerhttp.NewHandler(services, hub, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
