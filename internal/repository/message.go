package repository

import (
	"context"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for group message data operations.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListByGroup returns all messages for the group, oldest first.
	ListByGroup(ctx context.Context, groupID uint) ([]*models.Message, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
}

// messageRepository implements MessageRepository.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) ListByGroup(ctx context.Context, groupID uint) ([]*models.Message, error) {
	var messages []*models.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
