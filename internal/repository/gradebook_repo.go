package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// GradebookRepository defines persistence operations for gradebook entries.
type GradebookRepository interface {
	Upsert(ctx context.Context, entry *models.GradebookEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (models.GradebookEntry, error)
	Update(ctx context.Context, entry *models.GradebookEntry) error
	ListForAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]models.GradebookEntry, error)
}

type gradebookRepository struct {
	db *gorm.DB
}

// NewGradebookRepository instantiates a GORM-backed repository.
func NewGradebookRepository(db *gorm.DB) GradebookRepository {
	return &gradebookRepository{db: db}
}

// Upsert writes the auto-graded entry, replacing the automatic fields on
// conflict so repeated submissions keep the latest score. Manual overrides
// are untouched here.
func (r *gradebookRepository) Upsert(ctx context.Context, entry *models.GradebookEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "assignment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"auto_score", "final_score", "percentage", "grade_letter", "updated_at",
		}),
	}).Create(entry).Error
}

func (r *gradebookRepository) GetByID(ctx context.Context, id uuid.UUID) (models.GradebookEntry, error) {
	var entry models.GradebookEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return models.GradebookEntry{}, err
	}

	return entry, nil
}

func (r *gradebookRepository) Update(ctx context.Context, entry *models.GradebookEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *gradebookRepository) ListForAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]models.GradebookEntry, error) {
	if len(assignmentIDs) == 0 {
		return []models.GradebookEntry{}, nil
	}

	var entries []models.GradebookEntry
	err := r.db.WithContext(ctx).
		Where("assignment_id IN ?", assignmentIDs).
		Order("updated_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
