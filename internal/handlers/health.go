package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler reports whether the service can reach its store
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *logrus.Logger
}

// Health handles GET /health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB, h.Log)
	if !result.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
