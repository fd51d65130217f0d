// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"ledger/internal/handlers"
	"ledger/internal/services/account"
	"ledger/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the routes are bound to.
type Dependencies struct {
	Accounts  account.Service
	Transfers transfer.Service
	Gatherer  prometheus.Gatherer

	Version  string
	Notifier string
	// TransferRateLimit caps transfers per client IP per minute. Zero disables it.
	TransferRateLimit int
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.Version, deps.Notifier)
	accountHandler := handlers.NewAccountHandler(deps.Accounts)
	transferHandler := handlers.NewTransferHandler(deps.Transfers)

	app.Get("/health", healthHandler.HealthCheck)
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/v1")
	accounts := v1.Group("/accounts")
	accounts.Post("/", accountHandler.CreateAccount)
	accounts.Get("/", accountHandler.ListAccounts)
	accounts.Get("/total", accountHandler.TotalBalance)

	transferChain := []fiber.Handler{}
	if deps.TransferRateLimit > 0 {
		transferChain = append(transferChain, limiter.New(limiter.Config{
			Max:        deps.TransferRateLimit,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}
	transferChain = append(transferChain, transferHandler.Transfer)
	accounts.Post("/transfer", transferChain...)

	accounts.Get("/:id", accountHandler.GetAccount)
}
