package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.TeacherMessage) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.TeacherMessage, error)
	MarkReceivedRead(ctx context.Context, recipientID uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository instantiates a GORM-backed repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.TeacherMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.TeacherMessage, error) {
	var messages []models.TeacherMessage
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) MarkReceivedRead(ctx context.Context, recipientID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.TeacherMessage{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
