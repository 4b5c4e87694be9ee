package server

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/handlers"
	"github.com/localnerve/storedb/internal/middleware"
	"github.com/localnerve/storedb/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "github.com/localnerve/storedb/docs/api" // Swagger docs
)

// Options toggles the parts of the app that tests usually leave out
type Options struct {
	Metrics       bool
	AccessLog     bool
	Documentation bool
}

// New builds the Fiber app with every route wired to managers built over db
func New(cfg *config.Config, db *gorm.DB, log *logrus.Logger, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(log),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: log.Writer(),
		}))
	}
	app.Use(compress.New())

	// Prometheus metrics
	if opts.Metrics {
		prometheus := fiberprometheus.New("storedb")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// Swagger documentation
	if opts.Documentation {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	health := &handlers.HealthHandler{Config: cfg, DB: db, Log: log}
	app.Get("/health", health.Health)

	api := app.Group("/", middleware.VersionMiddleware())
	handlers.RegisterRoutes(api,
		&handlers.UserHandler{Users: services.NewUserService(db, log)},
		&handlers.ProductHandler{Products: services.NewProductService(db, log)},
		&handlers.OrderHandler{Orders: services.NewOrderService(db, log)},
	)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
			"type":      "not_found",
		})
	})

	return app
}

// errorHandler renders errors that escape the handlers in the standard envelope
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorType := "internal"

		// Check if it's a Fiber error
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			errorType = "http"
		} else {
			log.WithError(err).WithField("url", c.OriginalURL()).Error("unhandled request error")
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    code,
			"message":   message,
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
			"type":      errorType,
		})
	}
}
