package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness and the active notifier.
type HealthHandler struct {
	version  string
	notifier string
}

func NewHealthHandler(version, notifier string) *HealthHandler {
	return &HealthHandler{version: version, notifier: notifier}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.version,
		"services": fiber.Map{
			"store":    "in-memory",
			"notifier": h.notifier,
		},
	})
}
