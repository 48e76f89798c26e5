package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson plan lifecycle states.
const (
	LessonPlanStatusDraft    = "draft"
	LessonPlanStatusActive   = "active"
	LessonPlanStatusArchived = "archived"
)

// LessonPlan is a teacher-authored (optionally AI-drafted) teaching plan.
type LessonPlan struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	SubjectID       *uuid.UUID     `gorm:"type:uuid" json:"subject_id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	GradeLevel      int            `json:"grade_level"`
	DurationMinutes int            `json:"duration_minutes"`
	KeyConcepts     datatypes.JSON `json:"key_concepts"`
	Activities      datatypes.JSON `json:"activities"`
	Resources       datatypes.JSON `json:"resources"`
	Status          string         `gorm:"size:16;not null;default:draft" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (p *LessonPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// GradebookEntry reconciles automatic scoring with an optional manual override.
type GradebookEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gradebook_pair" json:"student_id"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gradebook_pair" json:"assignment_id"`
	AutoScore    float64   `json:"auto_score"`
	ManualScore  *float64  `json:"manual_score"`
	FinalScore   float64   `json:"final_score"`
	Percentage   float64   `json:"percentage"`
	GradeLetter  string    `gorm:"size:2" json:"grade_letter"`
	Comments     string    `gorm:"type:text" json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (e *GradebookEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TeacherMessage is a directed message between two users.
type TeacherMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Subject     string    `gorm:"size:255" json:"subject"`
	MessageText string    `gorm:"type:text;not null" json:"message_text"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *TeacherMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PdfAssessment stores an AI-generated printable question set.
type PdfAssessment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	SubjectID *uuid.UUID     `gorm:"type:uuid" json:"subject_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Topics    datatypes.JSON `json:"topics"`
	Questions datatypes.JSON `json:"questions"`
	Status    string         `gorm:"size:16;not null;default:draft" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (a *PdfAssessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
