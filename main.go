package main

import (
	"log"

	"monitoreo-server/confs"
	"monitoreo-server/db"
	"monitoreo-server/repositories"
	"monitoreo-server/server"
	"monitoreo-server/usecases"

	"go.uber.org/zap"
)

func main() {
	// load config
	err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// connect to database Postgres
	database, err := db.Connect()
	if err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}

	// make sure the baseline roles and modules exist
	if err := usecases.SeedRolesAndModules(repositories.NewRBACPgRepository(database)); err != nil {
		logger.Fatal("failed to seed roles and modules", zap.Error(err))
	}

	// run server
	srv := server.NewServer(database, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
