package server

import (
	"guildbook/internal/models"
	"guildbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /guides/:id/comment. Comments are append-only;
// the author falls back to the caller's verified identity, then role label.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Author  string `json:"author"`
		Comment string `json:"comment"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fallback := s.identity(c)
	if fallback == "" {
		fallback = s.role(c)
	}

	comment, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		GuideID:        id,
		Author:         req.Author,
		Body:           req.Comment,
		FallbackAuthor: fallback,
	})
	if err != nil {
		return s.respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
