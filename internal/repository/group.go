package repository

import (
	"context"
	"errors"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group and membership data operations.
type GroupRepository interface {
	// Create stores the group and its admin membership in one transaction.
	Create(ctx context.Context, group *models.Group, adminID uint) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetByName(ctx context.Context, name string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Group, error)
	// Delete removes the group, its memberships, and its messages in one
	// transaction. User records are untouched.
	Delete(ctx context.Context, id uint) error

	GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error)
	ListMemberships(ctx context.Context, groupID uint) ([]models.GroupMembership, error)
	CreateMembership(ctx context.Context, m *models.GroupMembership) error
	UpdateMembership(ctx context.Context, m *models.GroupMembership) error
	DeleteMembership(ctx context.Context, groupID, userID uint) error
}

// groupRepository implements GroupRepository.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group, adminID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		membership := models.GroupMembership{
			GroupID: group.ID,
			UserID:  adminID,
			IsAdmin: true,
			State:   models.MembershipStateActive,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

// ListByUser returns the groups where the user holds an active membership,
// admin or member. Blocked members are included; pending requesters are not.
func (r *groupRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Group, error) {
	var groups []*models.Group
	if err := r.db.WithContext(ctx).
		Joins("JOIN group_memberships gm ON gm.group_id = groups.id").
		Where("gm.user_id = ? AND gm.state = ?", userID, models.MembershipStateActive).
		Order("groups.created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error) {
	var m models.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Outsider
		}
		return nil, models.NewInternalError(err)
	}
	return &m, nil
}

func (r *groupRepository) ListMemberships(ctx context.Context, groupID uint) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}

func (r *groupRepository) CreateMembership(ctx context.Context, m *models.GroupMembership) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) UpdateMembership(ctx context.Context, m *models.GroupMembership) error {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) DeleteMembership(ctx context.Context, groupID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMembership{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
