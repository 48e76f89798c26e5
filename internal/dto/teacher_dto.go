package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// QuestionInput is one manually-authored question on a teacher assignment.
type QuestionInput struct {
	QuestionText  string   `json:"question_text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation"`
	Points        float64  `json:"points"`
}

// CreateTeacherAssignmentRequest creates a quiz assignment with its questions.
type CreateTeacherAssignmentRequest struct {
	Title        string          `json:"title" validate:"required"`
	SubjectID    string          `json:"subject_id"`
	Difficulty   string          `json:"difficulty"`
	TimeLimit    int             `json:"time_limit"`
	MaxAttempts  int             `json:"max_attempts"`
	PassingScore float64         `json:"passing_score"`
	DueDate      string          `json:"due_date"`
	Questions    []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// CreateLessonPlanRequest creates a lesson plan, optionally AI-drafted.
type CreateLessonPlanRequest struct {
	Title           string   `json:"title" validate:"required"`
	SubjectID       string   `json:"subject_id"`
	Subject         string   `json:"subject"`
	GradeLevel      int      `json:"grade_level"`
	DurationMinutes int      `json:"duration_minutes"`
	KeyConcepts     []string `json:"key_concepts"`
	Activities      []string `json:"activities"`
	Resources       []string `json:"resources"`
	UseAI           bool     `json:"use_ai"`
	Topic           string   `json:"topic"`
}

// UpdateLessonPlanRequest applies a partial update to an owned lesson plan.
type UpdateLessonPlanRequest struct {
	Title           *string   `json:"title"`
	GradeLevel      *int      `json:"grade_level"`
	DurationMinutes *int      `json:"duration_minutes"`
	KeyConcepts     *[]string `json:"key_concepts"`
	Activities      *[]string `json:"activities"`
	Resources       *[]string `json:"resources"`
	Status          *string   `json:"status"`
}

// LessonPlanResponse is the wire shape of a lesson plan.
type LessonPlanResponse struct {
	ID              uuid.UUID      `json:"id"`
	TeacherID       uuid.UUID      `json:"teacher_id"`
	SubjectID       *uuid.UUID     `json:"subject_id"`
	Title           string         `json:"title"`
	GradeLevel      int            `json:"grade_level"`
	DurationMinutes int            `json:"duration_minutes"`
	KeyConcepts     datatypes.JSON `json:"key_concepts"`
	Activities      datatypes.JSON `json:"activities"`
	Resources       datatypes.JSON `json:"resources"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewLessonPlanResponse maps the model into its wire shape.
func NewLessonPlanResponse(plan models.LessonPlan) LessonPlanResponse {
	return LessonPlanResponse{
		ID:              plan.ID,
		TeacherID:       plan.TeacherID,
		SubjectID:       plan.SubjectID,
		Title:           plan.Title,
		GradeLevel:      plan.GradeLevel,
		DurationMinutes: plan.DurationMinutes,
		KeyConcepts:     plan.KeyConcepts,
		Activities:      plan.Activities,
		Resources:       plan.Resources,
		Status:          plan.Status,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
	}
}

// NewLessonPlanResponseSlice maps a slice of models into wire shapes.
func NewLessonPlanResponseSlice(plans []models.LessonPlan) []LessonPlanResponse {
	responses := make([]LessonPlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, NewLessonPlanResponse(plan))
	}
	return responses
}

// UpdateGradebookRequest applies a manual override to a gradebook entry.
type UpdateGradebookRequest struct {
	ManualScore *float64 `json:"manual_score"`
	Comments    *string  `json:"comments"`
}

// GradebookEntryResponse is the wire shape of a gradebook entry.
type GradebookEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	AutoScore    float64   `json:"auto_score"`
	ManualScore  *float64  `json:"manual_score"`
	FinalScore   float64   `json:"final_score"`
	Percentage   float64   `json:"percentage"`
	GradeLetter  string    `json:"grade_letter"`
	Comments     string    `json:"comments,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewGradebookEntryResponse maps the model into its wire shape.
func NewGradebookEntryResponse(entry models.GradebookEntry) GradebookEntryResponse {
	return GradebookEntryResponse{
		ID:           entry.ID,
		StudentID:    entry.StudentID,
		AssignmentID: entry.AssignmentID,
		AutoScore:    entry.AutoScore,
		ManualScore:  entry.ManualScore,
		FinalScore:   entry.FinalScore,
		Percentage:   entry.Percentage,
		GradeLetter:  entry.GradeLetter,
		Comments:     entry.Comments,
		UpdatedAt:    entry.UpdatedAt,
	}
}

// NewGradebookEntryResponseSlice maps a slice of models into wire shapes.
func NewGradebookEntryResponseSlice(entries []models.GradebookEntry) []GradebookEntryResponse {
	responses := make([]GradebookEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewGradebookEntryResponse(entry))
	}
	return responses
}

// SendMessageRequest sends a direct message to another user.
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject"`
	MessageText string `json:"message_text" validate:"required"`
}

// MessageResponse is the wire shape of a direct message.
type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Subject     string    `json:"subject,omitempty"`
	MessageText string    `json:"message_text"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMessageResponse maps the model into its wire shape.
func NewMessageResponse(message models.TeacherMessage) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Subject:     message.Subject,
		MessageText: message.MessageText,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt,
	}
}

// NewMessageResponseSlice maps a slice of models into wire shapes.
func NewMessageResponseSlice(messages []models.TeacherMessage) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, NewMessageResponse(message))
	}
	return responses
}

// CreateAssessmentRequest creates an AI-generated printable assessment.
type CreateAssessmentRequest struct {
	Title         string   `json:"title" validate:"required"`
	Subject       string   `json:"subject" validate:"required"`
	SubjectID     string   `json:"subject_id"`
	Topics        []string `json:"topics" validate:"required,min=1"`
	Difficulty    string   `json:"difficulty"`
	QuestionCount int      `json:"question_count"`
}

// AssessmentResponse is the wire shape of a PDF assessment.
type AssessmentResponse struct {
	ID        uuid.UUID      `json:"id"`
	TeacherID uuid.UUID      `json:"teacher_id"`
	SubjectID *uuid.UUID     `json:"subject_id"`
	Title     string         `json:"title"`
	Topics    datatypes.JSON `json:"topics"`
	Questions datatypes.JSON `json:"questions"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewAssessmentResponse maps the model into its wire shape.
func NewAssessmentResponse(assessment models.PdfAssessment) AssessmentResponse {
	return AssessmentResponse{
		ID:        assessment.ID,
		TeacherID: assessment.TeacherID,
		SubjectID: assessment.SubjectID,
		Title:     assessment.Title,
		Topics:    assessment.Topics,
		Questions: assessment.Questions,
		Status:    assessment.Status,
		CreatedAt: assessment.CreatedAt,
	}
}

// NewAssessmentResponseSlice maps a slice of models into wire shapes.
func NewAssessmentResponseSlice(assessments []models.PdfAssessment) []AssessmentResponse {
	responses := make([]AssessmentResponse, 0, len(assessments))
	for _, assessment := range assessments {
		responses = append(responses, NewAssessmentResponse(assessment))
	}
	return responses
}
