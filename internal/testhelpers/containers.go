// This file is a helper for running a real MariaDB with testcontainers.
// It is used by the integration tests and by cmd/testcontainers as a standalone executable,
// in which case t is nil and failures are printed instead.

package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/storedb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultMariaDBImage = "mariadb:11"
	mariaDBDatabase     = "storedb"
	mariaDBUser         = "storedb"
	mariaDBPassword     = "storedb"
)

// MariaDB is a running database container and the config that reaches it
type MariaDB struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops the container
func (m *MariaDB) Terminate(t *testing.T) {
	if m == nil || m.Container == nil {
		return
	}
	if err := m.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate MariaDB: %v", err)
	}
}

// DockerAvailable reports whether a Docker daemon answers from the current environment
func DockerAvailable(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = cli.Ping(ctx)
	return err
}

// StartMariaDB starts a MariaDB container and waits until it accepts SQL connections.
// DB_IMAGE overrides the image.
func StartMariaDB(ctx context.Context, t *testing.T) (*MariaDB, error) {
	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = defaultMariaDBImage
	}

	port, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	dsn := func(host string, mapped nat.Port) string {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", mariaDBUser, mariaDBPassword, host, mapped.Port(), mariaDBDatabase)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "root" + mariaDBPassword,
				"MARIADB_DATABASE":      mariaDBDatabase,
				"MARIADB_USER":          mariaDBUser,
				"MARIADB_PASSWORD":      mariaDBPassword,
			},
			WaitingFor: wait.ForSQL(port, "mysql", dsn).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	logMessage(t, "MariaDB listening on %s:%s", host, mapped.Port())

	return &MariaDB{
		Container: container,
		Config: &config.Config{
			DBType:            "mariadb",
			DBHost:            host,
			DBPort:            mapped.Port(),
			DBDatabase:        mariaDBDatabase,
			DBUser:            mariaDBUser,
			DBPassword:        mariaDBPassword,
			DBConnectionLimit: 5,
			DBLogLevel:        "silent",
			LogLevel:          "warn",
		},
	}, nil
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
