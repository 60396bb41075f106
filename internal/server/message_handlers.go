package server

import (
	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGroupMessages handles GET /api/groups/:groupId/messages. Oldest first,
// so clients can poll and append. Blocked members are rejected even though
// they are still listed as members.
func (s *Server) GetGroupMessages(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	userID := c.Locals("userID").(uint)
	messages, err := s.groupService.ListMessages(c.Context(), groupID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if messages == nil {
		messages = []*models.Message{}
	}
	return c.JSON(messages)
}

// SendGroupMessage handles POST /api/groups/:groupId/messages.
func (s *Server) SendGroupMessage(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sender := currentUser(c)
	msg, err := s.groupService.SendMessage(c.Context(), groupID, sender, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
