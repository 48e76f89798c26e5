package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt lifecycle states.
const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
)

// DefaultPassingScore applies when an assignment does not configure its own threshold.
const DefaultPassingScore = 60.0

// Assignment is a quiz definition owned by a teacher, or by the student
// themselves for AI-generated practice.
type Assignment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Type           string     `gorm:"size:32;not null;default:quiz" json:"type"`
	Difficulty     string     `gorm:"size:32" json:"difficulty"`
	SubjectID      *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	TeacherID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"teacher_id"`
	TotalQuestions int        `json:"total_questions"`
	TimeLimit      int        `json:"time_limit"`
	MaxAttempts    int        `gorm:"not null;default:1" json:"max_attempts"`
	PassingScore   float64    `json:"passing_score"`
	DueDate        *time.Time `json:"due_date"`
	IsPublished    bool       `gorm:"not null;default:false" json:"is_published"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Questions []AssignmentQuestion `json:"questions,omitempty"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// EffectivePassingScore returns the configured threshold, falling back to the
// platform default when the assignment does not set one.
func (a Assignment) EffectivePassingScore() float64 {
	if a.PassingScore > 0 {
		return a.PassingScore
	}
	return DefaultPassingScore
}

// AssignmentQuestion is a single multiple-choice question within an assignment.
type AssignmentQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"assignment_id"`
	QuestionText  string         `gorm:"type:text;not null" json:"question_text"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `gorm:"size:512;not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Points        float64        `gorm:"not null;default:1" json:"points"`
	OrderIndex    int            `json:"order_index"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (q *AssignmentQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// AssignmentAttempt is one scored pass of a student through an assignment.
type AssignmentAttempt struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_attempt_student" json:"assignment_id"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_attempt_student" json:"student_id"`
	AttemptNumber   int        `gorm:"not null" json:"attempt_number"`
	Status          string     `gorm:"size:32;not null;default:in_progress" json:"status"`
	TotalScore      float64    `json:"total_score"`
	PercentageScore float64    `json:"percentage_score"`
	Passed          bool       `json:"passed"`
	StartedAt       time.Time  `json:"started_at"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (a *AssignmentAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// StudentResponse records one answered question within an attempt. Rows are
// written in bulk at submission time and never mutated afterwards.
type StudentResponse struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_id"`
	StudentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	QuestionID    uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	StudentAnswer string    `gorm:"size:512" json:"student_answer"`
	IsCorrect     bool      `json:"is_correct"`
	PointsEarned  float64   `json:"points_earned"`
	AttemptNumber int       `gorm:"not null" json:"attempt_number"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *StudentResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
