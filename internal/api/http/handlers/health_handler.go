package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/persistence"
)

// HealthHandler answers liveness and readiness probes. Postgres is a hard
// dependency; Redis only backs the unread counter cache and the token
// denylist, both of which tolerate an absent client, so a Redis outage
// degrades the service instead of failing readiness.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready probes the backing stores.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{}
	status := "ready"

	if err := h.postgres.Ping(ctx); err != nil {
		deps["postgres"] = err.Error()
		status = "unavailable"
	} else {
		deps["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		deps["redis"] = err.Error()
		if status == "ready" {
			status = "degraded"
		}
	} else {
		deps["redis"] = "ok"
	}

	if status == "unavailable" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "database unavailable",
				"details": deps,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
	})
}
