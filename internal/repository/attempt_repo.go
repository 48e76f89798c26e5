package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// AttemptRepository defines persistence operations for assignment attempts
// and their response rows.
type AttemptRepository interface {
	Start(ctx context.Context, assignmentID, studentID uuid.UUID, maxAttempts int) (models.AssignmentAttempt, error)
	Complete(ctx context.Context, attempt models.AssignmentAttempt, responses []models.StudentResponse) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.AssignmentAttempt, error)
	ListCompletedForAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]models.AssignmentAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates a GORM-backed repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// Start admits a new attempt inside a transaction so that concurrent start
// requests cannot race past the cap. The assignment row is locked on postgres;
// other dialects fall back to transaction isolation.
func (r *attemptRepository) Start(ctx context.Context, assignmentID, studentID uuid.UUID, maxAttempts int) (models.AssignmentAttempt, error) {
	var attempt models.AssignmentAttempt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var assignment models.Assignment
		if err := query.First(&assignment, "id = ?", assignmentID).Error; err != nil {
			return err
		}

		var highest int
		row := tx.Model(&models.AssignmentAttempt{}).
			Select("COALESCE(MAX(attempt_number), 0)").
			Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
			Row()
		if err := row.Scan(&highest); err != nil {
			return err
		}

		next := highest + 1
		if maxAttempts > 0 && next > maxAttempts {
			return ErrMaxAttemptsExceeded
		}

		attempt = models.AssignmentAttempt{
			AssignmentID:  assignmentID,
			StudentID:     studentID,
			AttemptNumber: next,
			Status:        models.AttemptStatusInProgress,
			StartedAt:     time.Now(),
		}

		return tx.Create(&attempt).Error
	})
	if err != nil {
		return models.AssignmentAttempt{}, err
	}

	return attempt, nil
}

// Complete persists the graded responses and flips the attempt to completed
// with its scores in a single scoped update, so re-submitting the same attempt
// number overwrites rather than duplicates.
func (r *attemptRepository) Complete(ctx context.Context, attempt models.AssignmentAttempt, responses []models.StudentResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Where(
			"assignment_id = ? AND student_id = ? AND attempt_number = ?",
			attempt.AssignmentID, attempt.StudentID, attempt.AttemptNumber,
		)

		if err := scope.Delete(&models.StudentResponse{}).Error; err != nil {
			return err
		}

		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&models.AssignmentAttempt{}).
			Where(
				"assignment_id = ? AND student_id = ? AND attempt_number = ?",
				attempt.AssignmentID, attempt.StudentID, attempt.AttemptNumber,
			).
			Updates(map[string]interface{}{
				"status":           models.AttemptStatusCompleted,
				"total_score":      attempt.TotalScore,
				"percentage_score": attempt.PercentageScore,
				"passed":           attempt.Passed,
				"submitted_at":     attempt.SubmittedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (r *attemptRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.AssignmentAttempt, error) {
	var attempts []models.AssignmentAttempt
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *attemptRepository) ListCompletedForAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]models.AssignmentAttempt, error) {
	if len(assignmentIDs) == 0 {
		return []models.AssignmentAttempt{}, nil
	}

	var attempts []models.AssignmentAttempt
	err := r.db.WithContext(ctx).
		Where("assignment_id IN ? AND status = ?", assignmentIDs, models.AttemptStatusCompleted).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	return attempts, nil
}
