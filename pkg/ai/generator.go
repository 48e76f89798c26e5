package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Token budgets per use case. Temperature is fixed at 0.7 across all of them.
const (
	generationTemperature = 0.7

	quizMaxTokens       = 2000
	lessonPlanMaxTokens = 2500
	assessmentMaxTokens = 3000
	doubtMaxTokens      = 500
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "proxilearn",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of AI content generation requests",
	}, []string{"use_case", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "proxilearn",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of AI content generation failures",
	}, []string{"use_case", "model"})
)

// questionArraySchema constrains every generated question set before it is
// trusted by a handler.
var questionArraySchema = jsonschema.MustCompileString("questions.json", `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["question_text", "options", "correct_answer"],
		"properties": {
			"question_text": {"type": "string", "minLength": 1},
			"options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
			"correct_answer": {"type": "string", "minLength": 1},
			"explanation": {"type": "string"},
			"points": {"type": "number", "minimum": 0}
		}
	}
}`)

// OpenRouterConfig defines configuration for the completion provider client.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  zerolog.Logger
}

// OpenRouterGenerator implements Generator against an OpenAI-compatible chat
// completion endpoint (OpenRouter in production).
type OpenRouterGenerator struct {
	client *openai.Client
	model  string
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenRouterGenerator builds a generator from the provided configuration.
func NewOpenRouterGenerator(cfg OpenRouterConfig) (*OpenRouterGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "moonshotai/kimi-k2"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &OpenRouterGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		tracer: otel.Tracer("github.com/Rameezuddinmohammed/proxilearn-mvp/pkg/ai"),
		logger: logger.With().Str("component", "ai_generator").Logger(),
	}, nil
}

// GenerateQuiz produces a validated multiple-choice question set.
func (g *OpenRouterGenerator) GenerateQuiz(ctx context.Context, params QuizParams) ([]GeneratedQuestion, error) {
	prompt := buildQuizPrompt(params)

	content, err := g.complete(ctx, "quiz", prompt, quizMaxTokens)
	if err != nil {
		return nil, err
	}

	return g.parseQuestionArray("quiz", content)
}

// GenerateLessonPlan produces a structured lesson plan draft.
func (g *OpenRouterGenerator) GenerateLessonPlan(ctx context.Context, params LessonPlanParams) (GeneratedLessonPlan, error) {
	prompt := buildLessonPlanPrompt(params)

	content, err := g.complete(ctx, "lesson_plan", prompt, lessonPlanMaxTokens)
	if err != nil {
		return GeneratedLessonPlan{}, err
	}

	raw, err := ExtractObject(content)
	if err != nil {
		aiFailures.WithLabelValues("lesson_plan", g.model).Inc()
		return GeneratedLessonPlan{}, generationError("extract lesson plan", err)
	}

	var plan GeneratedLessonPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		aiFailures.WithLabelValues("lesson_plan", g.model).Inc()
		return GeneratedLessonPlan{}, generationError("decode lesson plan", err)
	}

	return plan, nil
}

// GenerateAssessment produces a printable assessment question set.
func (g *OpenRouterGenerator) GenerateAssessment(ctx context.Context, params AssessmentParams) ([]GeneratedQuestion, error) {
	prompt := buildAssessmentPrompt(params)

	content, err := g.complete(ctx, "assessment", prompt, assessmentMaxTokens)
	if err != nil {
		return nil, err
	}

	return g.parseQuestionArray("assessment", content)
}

// AnswerDoubt produces a free-form explanation for a student doubt.
func (g *OpenRouterGenerator) AnswerDoubt(ctx context.Context, params DoubtParams) (string, error) {
	prompt := buildDoubtPrompt(params)

	content, err := g.complete(ctx, "doubt", prompt, doubtMaxTokens)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(content)
	if answer == "" {
		aiFailures.WithLabelValues("doubt", g.model).Inc()
		return "", generationError("doubt answer", fmt.Errorf("empty completion"))
	}

	return answer, nil
}

func (g *OpenRouterGenerator) complete(parent context.Context, useCase, prompt string, maxTokens int) (string, error) {
	ctx, span := g.tracer.Start(parent, "ai.generate", trace.WithAttributes(
		attribute.String("use_case", useCase),
		attribute.String("model", g.model),
	))
	defer span.End()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   maxTokens,
		Temperature: generationTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert educational content creator for school students. Follow the output format instructions exactly.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	aiDuration.WithLabelValues(useCase, g.model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(useCase, g.model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", generationError("provider call", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned")
		aiFailures.WithLabelValues(useCase, g.model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", generationError("provider call", err)
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *OpenRouterGenerator) parseQuestionArray(useCase, content string) ([]GeneratedQuestion, error) {
	raw, err := ExtractArray(content)
	if err != nil {
		aiFailures.WithLabelValues(useCase, g.model).Inc()
		return nil, generationError("extract questions", err)
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		aiFailures.WithLabelValues(useCase, g.model).Inc()
		return nil, generationError("decode questions", err)
	}

	if err := questionArraySchema.Validate(decoded); err != nil {
		aiFailures.WithLabelValues(useCase, g.model).Inc()
		return nil, generationError("validate questions", err)
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		aiFailures.WithLabelValues(useCase, g.model).Inc()
		return nil, generationError("decode questions", err)
	}

	for i := range questions {
		if questions[i].Points <= 0 {
			questions[i].Points = 1
		}
	}

	return questions, nil
}

func buildQuizPrompt(params QuizParams) string {
	count := params.QuestionCount
	if count <= 0 {
		count = 5
	}

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Create %d multiple-choice questions about %q for the subject %q at %s difficulty.\n\n",
		count, params.Topic, params.Subject, difficultyOrDefault(params.Difficulty))
	builder.WriteString("Respond with a JSON array only, no surrounding prose. Each element must have this shape:\n")
	builder.WriteString(`{"question_text": "...", "options": ["A) ...", "B) ...", "C) ...", "D) ..."], "correct_answer": "A) ...", "explanation": "...", "points": 1}`)
	builder.WriteString("\nThe correct_answer must exactly match one of the options.")
	return builder.String()
}

func buildLessonPlanPrompt(params LessonPlanParams) string {
	duration := params.DurationMinutes
	if duration <= 0 {
		duration = 45
	}

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Draft a lesson plan on %q for the subject %q, grade %d, lasting %d minutes.\n\n",
		params.Topic, params.Subject, params.GradeLevel, duration)
	builder.WriteString("Respond with a JSON object only, no surrounding prose, with this shape:\n")
	builder.WriteString(`{"title": "...", "key_concepts": ["..."], "activities": ["..."], "resources": ["..."]}`)
	return builder.String()
}

func buildAssessmentPrompt(params AssessmentParams) string {
	count := params.QuestionCount
	if count <= 0 {
		count = 10
	}

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Create a printable assessment titled %q for the subject %q at %s difficulty with %d questions.\n",
		params.Title, params.Subject, difficultyOrDefault(params.Difficulty), count)
	if len(params.Topics) > 0 {
		fmt.Fprintf(&builder, "Cover these topics: %s.\n", strings.Join(params.Topics, ", "))
	}
	builder.WriteString("\nRespond with a JSON array only, no surrounding prose. Each element must have this shape:\n")
	builder.WriteString(`{"question_text": "...", "options": ["A) ...", "B) ...", "C) ...", "D) ..."], "correct_answer": "A) ...", "explanation": "...", "points": 1}`)
	return builder.String()
}

func buildDoubtPrompt(params DoubtParams) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "A student has a doubt in %s.\n\nTitle: %s\nQuestion: %s\n", params.Subject, params.Title, params.QuestionText)
	if params.Context != "" {
		fmt.Fprintf(&builder, "Context: %s\n", params.Context)
	}
	builder.WriteString("\nExplain the answer step by step in plain language a school student can follow. Keep it concise.")
	return builder.String()
}

func difficultyOrDefault(difficulty string) string {
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if difficulty == "" {
		return "intermediate"
	}
	return difficulty
}
