package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrGeneration wraps every provider or parse failure raised by a Generator.
var ErrGeneration = errors.New("ai generation failed")

func generationError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrGeneration, stage, err)
}

// QuizParams describes an AI quiz generation request.
type QuizParams struct {
	Topic         string
	Subject       string
	Difficulty    string
	QuestionCount int
}

// GeneratedQuestion is one multiple-choice question produced by the model.
type GeneratedQuestion struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        float64  `json:"points"`
}

// LessonPlanParams describes an AI lesson plan request.
type LessonPlanParams struct {
	Topic           string
	Subject         string
	GradeLevel      int
	DurationMinutes int
}

// GeneratedLessonPlan is the structured plan produced by the model.
type GeneratedLessonPlan struct {
	Title       string   `json:"title"`
	KeyConcepts []string `json:"key_concepts"`
	Activities  []string `json:"activities"`
	Resources   []string `json:"resources"`
}

// AssessmentParams describes a printable assessment request.
type AssessmentParams struct {
	Title         string
	Subject       string
	Topics        []string
	Difficulty    string
	QuestionCount int
}

// DoubtParams describes a doubt-answering request.
type DoubtParams struct {
	Title        string
	QuestionText string
	Subject      string
	Context      string
}

// Generator produces structured educational content from the completion provider.
type Generator interface {
	GenerateQuiz(ctx context.Context, params QuizParams) ([]GeneratedQuestion, error)
	GenerateLessonPlan(ctx context.Context, params LessonPlanParams) (GeneratedLessonPlan, error)
	GenerateAssessment(ctx context.Context, params AssessmentParams) ([]GeneratedQuestion, error)
	AnswerDoubt(ctx context.Context, params DoubtParams) (string, error)
}
