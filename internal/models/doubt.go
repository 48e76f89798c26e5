package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doubt lifecycle states.
const (
	DoubtStatusOpen     = "open"
	DoubtStatusAnswered = "answered"
	DoubtStatusResolved = "resolved"
)

// Doubt response kinds. An AI response has a nil responder.
const (
	DoubtResponseTypeAI    = "ai"
	DoubtResponseTypeHuman = "human"
)

// Doubt is a student-submitted question routed to an AI responder and
// optionally a human teacher.
type Doubt struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	SubjectID     *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	QuestionText  string     `gorm:"type:text;not null" json:"question_text"`
	Context       string     `gorm:"type:text" json:"context"`
	PriorityLevel string     `gorm:"size:16;not null;default:normal" json:"priority_level"`
	Status        string     `gorm:"size:16;not null;default:open" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Responses []DoubtResponse `json:"responses,omitempty"`
}

func (d *Doubt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DoubtResponse is one answer attached to a doubt.
type DoubtResponse struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DoubtID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doubt_id"`
	ResponderID  *uuid.UUID `gorm:"type:uuid" json:"responder_id"`
	ResponseText string     `gorm:"type:text;not null" json:"response_text"`
	ResponseType string     `gorm:"size:16;not null;default:human" json:"response_type"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (r *DoubtResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
