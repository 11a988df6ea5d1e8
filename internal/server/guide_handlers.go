package server

import (
	"guildbook/internal/models"
	"guildbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListGuides handles GET /guides
func (s *Server) ListGuides(c *fiber.Ctx) error {
	summaries, err := s.guideService.ListGuides(c.UserContext())
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(summaries)
}

// GetGuide handles GET /guides/:id?voterKey=
func (s *Server) GetGuide(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	detail, err := s.guideService.GetGuide(c.UserContext(), id, c.Query("voterKey"))
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(detail)
}

// CreateGuide handles POST /guides
func (s *Server) CreateGuide(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Author   string `json:"author"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	summary, err := s.guideService.CreateGuide(c.UserContext(), service.CreateGuideInput{
		Title:          req.Title,
		Content:        req.Content,
		Category:       req.Category,
		Author:         req.Author,
		FallbackAuthor: s.identity(c),
	})
	if err != nil {
		return s.respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(summary)
}

// UpdateGuide handles PATCH /guides/:id. Only supplied fields are merged;
// the capability table restricts this operation to officer and gm.
func (s *Server) UpdateGuide(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	summary, err := s.guideService.UpdateGuide(c.UserContext(), id, service.UpdateGuideInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return s.respondErr(c, err)
	}

	return c.JSON(summary)
}
