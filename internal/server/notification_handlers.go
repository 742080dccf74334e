package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Newest first,
// the actor preloaded so clients can render "X liked your post".
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page := parsePagination(c, 50)

	notifications, err := s.notificationRepo.ListByRecipient(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(notifications)
}
