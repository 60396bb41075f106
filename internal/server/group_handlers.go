package server

import (
	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// memberTarget is the request body for moderation actions that act on
// another user.
type memberTarget struct {
	UserID uint `json:"user_id"`
}

func (s *Server) parseMemberTarget(c *fiber.Ctx) (uint, error) {
	var req memberTarget
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
		return 0, errResponseWritten
	}
	return req.UserID, nil
}

// GetGroups handles GET /api/groups. Newest first.
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// GetMyGroups handles GET /api/groups/me. Admin and member groups only;
// a pending join request does not make the group appear here.
func (s *Server) GetMyGroups(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	groups, err := s.groupService.MyGroups(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// GetGroup handles GET /api/groups/:groupId.
func (s *Server) GetGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	detail, err := s.groupService.GetGroup(c.Context(), groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// CreateGroup handles POST /api/groups. The creator becomes the group's
// admin and sole member.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)
	group, err := s.groupService.CreateGroup(c.Context(), userID, req.Name, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// DeleteGroup handles DELETE /api/groups/:groupId. Admin only; removes the
// group with its memberships and messages.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	group := c.Locals("group").(*models.Group)
	if err := s.groupService.DeleteGroup(c.Context(), group.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group deleted"})
}

// RequestJoinGroup handles POST /api/groups/:groupId/join.
func (s *Server) RequestJoinGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "groupId")
	if err != nil {
		return nil
	}

	userID := c.Locals("userID").(uint)
	if err := s.groupService.RequestJoin(c.Context(), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Join request sent"})
}

// ApproveJoinRequest handles POST /api/groups/:groupId/approve. Admin only.
func (s *Server) ApproveJoinRequest(c *fiber.Ctx) error {
	group := c.Locals("group").(*models.Group)
	targetID, err := s.parseMemberTarget(c)
	if err != nil {
		return nil
	}

	if err := s.groupService.Approve(c.Context(), group.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request approved"})
}

// RejectJoinRequest handles POST /api/groups/:groupId/reject. Admin only.
func (s *Server) RejectJoinRequest(c *fiber.Ctx) error {
	group := c.Locals("group").(*models.Group)
	targetID, err := s.parseMemberTarget(c)
	if err != nil {
		return nil
	}

	if err := s.groupService.Reject(c.Context(), group.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request rejected"})
}

// RemoveGroupMember handles POST /api/groups/:groupId/remove. Admin only.
func (s *Server) RemoveGroupMember(c *fiber.Ctx) error {
	group := c.Locals("group").(*models.Group)
	targetID, err := s.parseMemberTarget(c)
	if err != nil {
		return nil
	}

	if err := s.groupService.RemoveMember(c.Context(), group.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}

// BlockGroupMember handles POST /api/groups/:groupId/block. Admin only. The
// blocked user stays in the member list but loses chat access and cannot
// re-request to join.
func (s *Server) BlockGroupMember(c *fiber.Ctx) error {
	group := c.Locals("group").(*models.Group)
	targetID, err := s.parseMemberTarget(c)
	if err != nil {
		return nil
	}

	if err := s.groupService.Block(c.Context(), group.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User restricted"})
}

// UnblockGroupMember handles POST /api/groups/:groupId/unblock. Admin only.
func (s *Server) UnblockGroupMember(c *fiber.Ctx) error {
	group := c.Locals("group").(*models.Group)
	targetID, err := s.parseMemberTarget(c)
	if err != nil {
		return nil
	}

	if err := s.groupService.Unblock(c.Context(), group.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User unblocked"})
}
