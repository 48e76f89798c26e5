package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// GenerateQuizRequest asks the AI generator for a practice quiz.
type GenerateQuizRequest struct {
	Topic         string `json:"topic" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	SubjectID     string `json:"subject_id"`
}

// SubmitAttemptRequest carries the student's answers keyed by question id.
type SubmitAttemptRequest struct {
	Answers       map[string]string `json:"answers" validate:"required"`
	AttemptNumber int               `json:"attempt_number" validate:"required"`
}

// AssignmentResponse is the student-facing assignment shape.
type AssignmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Type           string     `json:"type"`
	Difficulty     string     `json:"difficulty"`
	SubjectID      *uuid.UUID `json:"subject_id"`
	TotalQuestions int        `json:"total_questions"`
	TimeLimit      int        `json:"time_limit"`
	MaxAttempts    int        `json:"max_attempts"`
	PassingScore   float64    `json:"passing_score"`
	DueDate        *time.Time `json:"due_date"`
	IsPublished    bool       `json:"is_published"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewAssignmentResponse maps the model into its wire shape.
func NewAssignmentResponse(assignment models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             assignment.ID,
		Title:          assignment.Title,
		Type:           assignment.Type,
		Difficulty:     assignment.Difficulty,
		SubjectID:      assignment.SubjectID,
		TotalQuestions: assignment.TotalQuestions,
		TimeLimit:      assignment.TimeLimit,
		MaxAttempts:    assignment.MaxAttempts,
		PassingScore:   assignment.PassingScore,
		DueDate:        assignment.DueDate,
		IsPublished:    assignment.IsPublished,
		CreatedAt:      assignment.CreatedAt,
	}
}

// NewAssignmentResponseSlice maps a slice of models into wire shapes.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}

// QuestionResponse is the student-facing question shape. The correct answer
// and explanation are deliberately absent.
type QuestionResponse struct {
	ID           uuid.UUID      `json:"id"`
	AssignmentID uuid.UUID      `json:"assignment_id"`
	QuestionText string         `json:"question_text"`
	Options      datatypes.JSON `json:"options"`
	Points       float64        `json:"points"`
	OrderIndex   int            `json:"order_index"`
}

// NewQuestionResponseSlice maps questions into their student-facing shape.
func NewQuestionResponseSlice(questions []models.AssignmentQuestion) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, QuestionResponse{
			ID:           question.ID,
			AssignmentID: question.AssignmentID,
			QuestionText: question.QuestionText,
			Options:      question.Options,
			Points:       question.Points,
			OrderIndex:   question.OrderIndex,
		})
	}
	return responses
}

// GeneratedQuizResponse is returned by the AI quiz generation endpoint.
type GeneratedQuizResponse struct {
	AssignmentID uuid.UUID          `json:"assignment_id"`
	Title        string             `json:"title"`
	Questions    []QuestionResponse `json:"questions"`
}

// AttemptResponse is the wire shape of an attempt.
type AttemptResponse struct {
	ID              uuid.UUID  `json:"id"`
	AssignmentID    uuid.UUID  `json:"assignment_id"`
	AttemptNumber   int        `json:"attempt_number"`
	Status          string     `json:"status"`
	TotalScore      float64    `json:"total_score"`
	PercentageScore float64    `json:"percentage_score"`
	Passed          bool       `json:"passed"`
	StartedAt       time.Time  `json:"started_at"`
	SubmittedAt     *time.Time `json:"submitted_at"`
}

// NewAttemptResponse maps the model into its wire shape.
func NewAttemptResponse(attempt models.AssignmentAttempt) AttemptResponse {
	return AttemptResponse{
		ID:              attempt.ID,
		AssignmentID:    attempt.AssignmentID,
		AttemptNumber:   attempt.AttemptNumber,
		Status:          attempt.Status,
		TotalScore:      attempt.TotalScore,
		PercentageScore: attempt.PercentageScore,
		Passed:          attempt.Passed,
		StartedAt:       attempt.StartedAt,
		SubmittedAt:     attempt.SubmittedAt,
	}
}

// GradedQuestionResult reports per-question grading back to the student.
type GradedQuestionResult struct {
	QuestionID    uuid.UUID `json:"question_id"`
	StudentAnswer string    `json:"student_answer"`
	IsCorrect     bool      `json:"is_correct"`
	PointsEarned  float64   `json:"points_earned"`
}

// SubmitResultResponse is returned after grading a submission.
type SubmitResultResponse struct {
	Attempt         AttemptResponse        `json:"attempt"`
	TotalScore      float64                `json:"total_score"`
	PossibleScore   float64                `json:"possible_score"`
	PercentageScore float64                `json:"percentage_score"`
	Passed          bool                   `json:"passed"`
	Results         []GradedQuestionResult `json:"results"`
}
