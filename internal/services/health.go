package services

import (
	"fmt"
	"net"
	"time"

	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const healthTimeout = 1500 * time.Millisecond

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck checks that the database host is reachable and that the store answers a ping
func HealthCheck(cfg *config.Config, db *gorm.DB, log *logrus.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	if cfg.IsNetworkDB() {
		address := net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		if err := utils.PingAddress(address, healthTimeout); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_host_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database host unreachable: %v", err)
			log.WithError(err).Warn("Health check failed - database host")
			return result
		}
	}

	if err := database.Ping(db, healthTimeout); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.WithError(err).Warn("Health check failed - database ping")
		return result
	}

	result.Database = "ok"
	log.Debug("Health check passed - all systems operational")
	return result
}
