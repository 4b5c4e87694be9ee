package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/localnerve/storedb/internal/testhelpers"
	"github.com/sirupsen/logrus"
)

func main() {
	var envFilename string
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show usage")
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a migrated MariaDB testcontainer for local development and print the
environment the server needs to reach it.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file (DB_IMAGE overrides the image)

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		logrus.Infof("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			logrus.Fatalf("Failed to load environment variables: %v", err)
		}
	} else {
		logrus.Info("No environment file specified, using current environment variables")
	}

	ctx := context.Background()
	if err := testhelpers.DockerAvailable(ctx); err != nil {
		logrus.Fatalf("Docker is not available: %v", err)
	}

	mariadb, err := testhelpers.StartMariaDB(ctx, nil)
	if err != nil {
		logrus.Fatalf("Failed to create test container: %v", err)
	}

	db, err := database.Connect(mariadb.Config, logging.New(mariadb.Config))
	if err != nil {
		mariadb.Terminate(nil)
		logrus.Fatalf("Failed to connect: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		mariadb.Terminate(nil)
		logrus.Fatalf("Failed to migrate: %v", err)
	}
	_ = database.Close(db)

	cfg := mariadb.Config
	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	logrus.Infof("Received signal: %v, terminating test container...", sig)
	mariadb.Terminate(nil)
}
