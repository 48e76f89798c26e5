package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// AssignmentRepository defines persistence operations for assignments and
// their questions.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment, questions []models.AssignmentQuestion) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Assignment, error)
	ListVisibleToStudent(ctx context.Context, studentID uuid.UUID) ([]models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Assignment, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Assignment, error)
	Publish(ctx context.Context, id, teacherID uuid.UUID) (models.Assignment, error)
	Questions(ctx context.Context, assignmentID uuid.UUID) ([]models.AssignmentQuestion, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment, questions []models.AssignmentQuestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].AssignmentID = assignment.ID
			questions[i].OrderIndex = i
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

// ListVisibleToStudent returns published assignments plus the student's own
// generated practice quizzes.
func (r *assignmentRepository) ListVisibleToStudent(ctx context.Context, studentID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).
		Where("is_published = ? OR teacher_id = ?", true, studentID).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Assignment, error) {
	if len(ids) == 0 {
		return []models.Assignment{}, nil
	}

	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Publish(ctx context.Context, id, teacherID uuid.UUID) (models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, "id = ? AND teacher_id = ?", id, teacherID).Error; err != nil {
			return err
		}

		assignment.IsPublished = true
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Questions(ctx context.Context, assignmentID uuid.UUID) ([]models.AssignmentQuestion, error) {
	var questions []models.AssignmentQuestion
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("order_index ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	return questions, nil
}
