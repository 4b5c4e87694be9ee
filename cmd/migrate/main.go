package main

import (
	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/sirupsen/logrus"
)

// migrate creates or updates the schema, then exits. Run it before starting the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.WithField("database", cfg.DBDatabase).Info("Schema is up to date")
}
