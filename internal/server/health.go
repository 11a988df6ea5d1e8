package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LivenessCheck reports process liveness. It never touches the database, so
// orchestrators do not restart the process while the store is merely down.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// ReadinessCheck verifies the backing store is reachable. While running
// degraded (no database configured) it answers Service Unavailable so load
// balancers route traffic elsewhere.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	if s.db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"reason": "database not configured",
		})
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"reason": "database handle unavailable",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"reason": "database unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
	})
}
