package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// CreateDoubtRequest submits a new student doubt.
type CreateDoubtRequest struct {
	Title         string `json:"title" validate:"required"`
	QuestionText  string `json:"question_text" validate:"required"`
	Subject       string `json:"subject"`
	SubjectID     string `json:"subject_id"`
	Context       string `json:"context"`
	PriorityLevel string `json:"priority_level"`
}

// DoubtResponseItem is the wire shape of one answer on a doubt.
type DoubtResponseItem struct {
	ID           uuid.UUID  `json:"id"`
	ResponderID  *uuid.UUID `json:"responder_id"`
	ResponseText string     `json:"response_text"`
	ResponseType string     `json:"response_type"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DoubtResponse is the wire shape of a doubt with its answers.
type DoubtResponse struct {
	ID            uuid.UUID           `json:"id"`
	StudentID     uuid.UUID           `json:"student_id"`
	SubjectID     *uuid.UUID          `json:"subject_id"`
	Title         string              `json:"title"`
	QuestionText  string              `json:"question_text"`
	Context       string              `json:"context,omitempty"`
	PriorityLevel string              `json:"priority_level"`
	Status        string              `json:"status"`
	Responses     []DoubtResponseItem `json:"responses"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewDoubtResponse maps the model into its wire shape.
func NewDoubtResponse(doubt models.Doubt) DoubtResponse {
	responses := make([]DoubtResponseItem, 0, len(doubt.Responses))
	for _, response := range doubt.Responses {
		responses = append(responses, DoubtResponseItem{
			ID:           response.ID,
			ResponderID:  response.ResponderID,
			ResponseText: response.ResponseText,
			ResponseType: response.ResponseType,
			CreatedAt:    response.CreatedAt,
		})
	}

	return DoubtResponse{
		ID:            doubt.ID,
		StudentID:     doubt.StudentID,
		SubjectID:     doubt.SubjectID,
		Title:         doubt.Title,
		QuestionText:  doubt.QuestionText,
		Context:       doubt.Context,
		PriorityLevel: doubt.PriorityLevel,
		Status:        doubt.Status,
		Responses:     responses,
		CreatedAt:     doubt.CreatedAt,
	}
}

// NewDoubtResponseSlice maps a slice of models into wire shapes.
func NewDoubtResponseSlice(doubts []models.Doubt) []DoubtResponse {
	responses := make([]DoubtResponse, 0, len(doubts))
	for _, doubt := range doubts {
		responses = append(responses, NewDoubtResponse(doubt))
	}
	return responses
}

// CreatedDoubtResponse is returned from doubt submission. AIError carries the
// degradation reason when the AI reply could not be generated.
type CreatedDoubtResponse struct {
	Doubt      DoubtResponse `json:"doubt"`
	AIResponse *string       `json:"ai_response"`
	AIError    string        `json:"ai_error,omitempty"`
}
