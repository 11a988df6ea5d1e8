package server

import (
	"guildbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVote handles POST /guides/:id/vote. The voterKey is an opaque
// client-supplied deduplication key, not a verified identity; a client that
// manufactures a fresh key is a fresh voter.
func (s *Server) ToggleVote(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		VoterKey string `json:"voterKey"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.VoterKey == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("voterKey is required"))
	}

	result, err := s.guideService.ToggleVote(c.UserContext(), id, req.VoterKey)
	if err != nil {
		return s.respondErr(c, err)
	}

	return c.JSON(result)
}
