package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// AssessmentRepository defines persistence operations for PDF assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.PdfAssessment) error
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.PdfAssessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository instantiates a GORM-backed repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *models.PdfAssessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.PdfAssessment, error) {
	var assessments []models.PdfAssessment
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}

	return assessments, nil
}
