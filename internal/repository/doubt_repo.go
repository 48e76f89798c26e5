package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// DoubtRepository defines persistence operations for doubts and their responses.
type DoubtRepository interface {
	Create(ctx context.Context, doubt *models.Doubt) error
	AddResponse(ctx context.Context, response *models.DoubtResponse) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Doubt, error)
}

type doubtRepository struct {
	db *gorm.DB
}

// NewDoubtRepository instantiates a GORM-backed repository.
func NewDoubtRepository(db *gorm.DB) DoubtRepository {
	return &doubtRepository{db: db}
}

func (r *doubtRepository) Create(ctx context.Context, doubt *models.Doubt) error {
	return r.db.WithContext(ctx).Create(doubt).Error
}

func (r *doubtRepository) AddResponse(ctx context.Context, response *models.DoubtResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *doubtRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&models.Doubt{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *doubtRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Doubt, error) {
	var doubts []models.Doubt
	err := r.db.WithContext(ctx).
		Preload("Responses").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&doubts).Error
	if err != nil {
		return nil, err
	}

	return doubts, nil
}
