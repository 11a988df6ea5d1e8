package server

import (
	"errors"
	"log/slog"

	"guildbook/internal/middleware"
	"guildbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the guide id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid guide ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// identity returns the verified caller identity set by the auth middleware.
func (s *Server) identity(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalIdentity).(string)
	return id
}

// role returns the verified caller role set by the auth middleware.
func (s *Server) role(c *fiber.Ctx) string {
	role, _ := c.Locals(middleware.LocalRole).(string)
	return role
}

// respondErr maps a service error onto the HTTP taxonomy. Internal causes are
// logged with full context and surfaced only as a generic message.
func (s *Server) respondErr(c *fiber.Ctx, err error) error {
	status := models.StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}
