// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"mindhaven/internal/models"
	"mindhaven/internal/repository"
)

// GroupService manages the group membership lifecycle and message
// authorization. Every (group, user) pair occupies exactly one of five roles
// at any time (admin, member, blocked member, pending, outsider); transitions
// between them happen only here.
type GroupService struct {
	groupRepo   repository.GroupRepository
	messageRepo repository.MessageRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, messageRepo repository.MessageRepository) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		messageRepo: messageRepo,
	}
}

// GroupSummary is a group with its admin resolved to the public projection.
type GroupSummary struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Admin       *models.PublicUser `json:"admin,omitempty"`
	CreatedAt   string             `json:"created_at"`
}

// GroupDetail is a group with every membership list populated. Blocked users
// deliberately appear in both Members and Blocked: they are retained as
// members so the admin can still see them.
type GroupDetail struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Admin        *models.PublicUser  `json:"admin,omitempty"`
	Members      []models.PublicUser `json:"members"`
	JoinRequests []models.PublicUser `json:"joinRequests"`
	Blocked      []models.PublicUser `json:"blocked"`
	MessageCount int64               `json:"message_count"`
	CreatedAt    string              `json:"created_at"`
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// CreateGroup creates a group with the creator as admin and sole member.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID uint, name, description string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Group name required")
	}

	existing, err := s.groupRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Group name taken")
	}

	group := &models.Group{
		Name:        name,
		Description: description,
	}
	if err := s.groupRepo.Create(ctx, group, creatorID); err != nil {
		return nil, err
	}
	return group, nil
}

// RequestJoin files a join request for the user. Only outsiders may request;
// blocked users are rejected outright.
func (s *GroupService) RequestJoin(ctx context.Context, groupID, userID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}

	switch models.RoleOf(m) {
	case models.RoleBlockedMember:
		return models.NewForbiddenError("You are blocked from this group")
	case models.RoleAdmin, models.RoleMember:
		return models.NewInvalidStateError("Already a member")
	case models.RolePending:
		return models.NewInvalidStateError("Request pending")
	}

	return s.groupRepo.CreateMembership(ctx, &models.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
		State:   models.MembershipStatePending,
	})
}

// Approve turns a pending join request into an active membership.
func (s *GroupService) Approve(ctx context.Context, groupID, userID uint) error {
	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if models.RoleOf(m) != models.RolePending {
		return models.NewInvalidStateError("No join request")
	}

	m.State = models.MembershipStateActive
	return s.groupRepo.UpdateMembership(ctx, m)
}

// Reject discards a pending join request, returning the user to outsider.
func (s *GroupService) Reject(ctx context.Context, groupID, userID uint) error {
	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if models.RoleOf(m) != models.RolePending {
		return models.NewInvalidStateError("No join request")
	}

	return s.groupRepo.DeleteMembership(ctx, groupID, userID)
}

// RemoveMember removes an active member from the group. The admin can never
// be removed, so the admin-in-members invariant holds across all transitions.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID uint) error {
	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if m == nil || m.State != models.MembershipStateActive {
		return models.NewInvalidStateError("Not a member")
	}
	if m.IsAdmin {
		return models.NewInvalidStateError("Cannot remove admin")
	}

	return s.groupRepo.DeleteMembership(ctx, groupID, userID)
}

// Block bars a user from group interaction. The user is retained (or made)
// an active member so the admin can still see them, and any pending join
// request is cleared. There is no self-target guard: an admin may block
// themselves, matching the reference behavior.
func (s *GroupService) Block(ctx context.Context, groupID, userID uint) error {
	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if m != nil && m.Blocked {
		return models.NewInvalidStateError("Already restricted")
	}

	if m == nil {
		return s.groupRepo.CreateMembership(ctx, &models.GroupMembership{
			GroupID: groupID,
			UserID:  userID,
			State:   models.MembershipStateActive,
			Blocked: true,
		})
	}

	m.Blocked = true
	m.State = models.MembershipStateActive
	return s.groupRepo.UpdateMembership(ctx, m)
}

// Unblock restores a blocked user to a regular active member. Unblocking a
// user with no membership row still leaves them a member, matching the
// reference restoration behavior.
func (s *GroupService) Unblock(ctx context.Context, groupID, userID uint) error {
	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}

	if m == nil {
		return s.groupRepo.CreateMembership(ctx, &models.GroupMembership{
			GroupID: groupID,
			UserID:  userID,
			State:   models.MembershipStateActive,
		})
	}

	m.Blocked = false
	m.State = models.MembershipStateActive
	return s.groupRepo.UpdateMembership(ctx, m)
}

// DeleteGroup removes the group, its memberships, and every message in it.
// User records are untouched.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, groupID)
}

// ListGroups returns all groups, newest first, with admins resolved.
func (s *GroupService) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, groups)
}

// MyGroups returns the groups where the user is admin or member. Pending
// requesters are excluded; blocked members are not.
func (s *GroupService) MyGroups(ctx context.Context, userID uint) ([]GroupSummary, error) {
	groups, err := s.groupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, groups)
}

func (s *GroupService) summarize(ctx context.Context, groups []*models.Group) ([]GroupSummary, error) {
	summaries := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		summary := GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			CreatedAt:   g.CreatedAt.UTC().Format(timeLayout),
		}
		memberships, err := s.groupRepo.ListMemberships(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		for i := range memberships {
			if memberships[i].IsAdmin && memberships[i].User != nil {
				admin := memberships[i].User.Public()
				summary.Admin = &admin
				break
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetGroup returns the group with members, join requests, blocked users,
// and the message count populated.
func (s *GroupService) GetGroup(ctx context.Context, groupID uint) (*GroupDetail, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.groupRepo.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, err
	}

	messageCount, err := s.messageRepo.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	detail := &GroupDetail{
		ID:           group.ID,
		Name:         group.Name,
		Description:  group.Description,
		Members:      []models.PublicUser{},
		JoinRequests: []models.PublicUser{},
		Blocked:      []models.PublicUser{},
		MessageCount: messageCount,
		CreatedAt:    group.CreatedAt.UTC().Format(timeLayout),
	}

	for i := range memberships {
		m := &memberships[i]
		if m.User == nil {
			continue
		}
		user := m.User.Public()
		if m.IsAdmin {
			admin := user
			detail.Admin = &admin
		}
		switch models.RoleOf(m) {
		case models.RolePending:
			detail.JoinRequests = append(detail.JoinRequests, user)
		case models.RoleBlockedMember:
			detail.Members = append(detail.Members, user)
			detail.Blocked = append(detail.Blocked, user)
		default:
			detail.Members = append(detail.Members, user)
		}
	}

	return detail, nil
}

// authorizeMessaging rejects callers who may not read or send group
// messages. Blocked always wins: a blocked member is rejected even though
// they remain in the member list.
func (s *GroupService) authorizeMessaging(ctx context.Context, groupID, userID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}

	switch models.RoleOf(m) {
	case models.RoleBlockedMember:
		return models.NewForbiddenError("You are blocked from this group")
	case models.RoleAdmin, models.RoleMember:
		return nil
	default:
		return models.NewForbiddenError("Not a member of this group")
	}
}

// SendMessage stores a chat message from a non-blocked member or admin.
func (s *GroupService) SendMessage(ctx context.Context, groupID uint, sender *models.User, content string) (*models.Message, error) {
	if err := s.authorizeMessaging(ctx, groupID, sender.ID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Message content required")
	}

	msg := &models.Message{
		GroupID:  groupID,
		SenderID: sender.ID,
		Content:  content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	msg.Sender = sender
	return msg, nil
}

// ListMessages returns the group's messages, oldest first, for a non-blocked
// member or admin.
func (s *GroupService) ListMessages(ctx context.Context, groupID, userID uint) ([]*models.Message, error) {
	if err := s.authorizeMessaging(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByGroup(ctx, groupID)
}
