package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. It returns every post authored by a
// user the caller follows, newest first. Callers with no follows get
// an empty list rather than a global timeline.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	posts, err := s.feedService.GetFeed(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}
