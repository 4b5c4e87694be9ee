package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/localnerve/storedb/internal/server"
	"github.com/sirupsen/logrus"
)

// @title StoreDB API
// @version 1.0.0
// @description Users, products and orders over a relational store
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/storedb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg)

	if err := run(cfg, log); err != nil {
		log.Fatal(err)
	}
	log.Info("Server stopped")
}

// run owns the database connection, so it is closed on every exit path
func run(cfg *config.Config, log *logrus.Logger) error {
	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	// Schema changes normally run through cmd/migrate
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Schema migrated")
	}

	app := server.New(cfg, db, log, server.Options{
		Metrics:       true,
		AccessLog:     true,
		Documentation: true,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.WithField("port", cfg.Port).Info("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
