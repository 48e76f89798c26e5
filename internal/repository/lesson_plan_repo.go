package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// LessonPlanRepository defines persistence operations for lesson plans. Every
// mutation is scoped to the owning teacher.
type LessonPlanRepository interface {
	Create(ctx context.Context, plan *models.LessonPlan) error
	GetOwned(ctx context.Context, id, teacherID uuid.UUID) (models.LessonPlan, error)
	Update(ctx context.Context, plan *models.LessonPlan) error
	Delete(ctx context.Context, id, teacherID uuid.UUID) error
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.LessonPlan, error)
}

type lessonPlanRepository struct {
	db *gorm.DB
}

// NewLessonPlanRepository instantiates a GORM-backed repository.
func NewLessonPlanRepository(db *gorm.DB) LessonPlanRepository {
	return &lessonPlanRepository{db: db}
}

func (r *lessonPlanRepository) Create(ctx context.Context, plan *models.LessonPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *lessonPlanRepository) GetOwned(ctx context.Context, id, teacherID uuid.UUID) (models.LessonPlan, error) {
	var plan models.LessonPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ? AND teacher_id = ?", id, teacherID).Error; err != nil {
		return models.LessonPlan{}, err
	}

	return plan, nil
}

func (r *lessonPlanRepository) Update(ctx context.Context, plan *models.LessonPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *lessonPlanRepository) Delete(ctx context.Context, id, teacherID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		Delete(&models.LessonPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *lessonPlanRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.LessonPlan, error) {
	var plans []models.LessonPlan
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	return plans, nil
}
