package ai

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *OpenRouterGenerator {
	t.Helper()

	generator, err := NewOpenRouterGenerator(OpenRouterConfig{
		APIKey: "test-key",
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	return generator
}

func TestNewOpenRouterGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenRouterGenerator(OpenRouterConfig{})
	require.Error(t, err)
}

func TestParseQuestionArray(t *testing.T) {
	generator := newTestGenerator(t)

	t.Run("valid payload with prose", func(t *testing.T) {
		content := `Here you go:
[
  {"question_text": "What is 2+2?", "options": ["A) 3", "B) 4"], "correct_answer": "B) 4", "explanation": "basic sum", "points": 2},
  {"question_text": "What is 3+3?", "options": ["A) 6", "B) 9"], "correct_answer": "A) 6"}
]`
		questions, err := generator.parseQuestionArray("quiz", content)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		require.Equal(t, "B) 4", questions[0].CorrectAnswer)
		require.Equal(t, 2.0, questions[0].Points)
		// Missing points default to one.
		require.Equal(t, 1.0, questions[1].Points)
	})

	t.Run("missing correct_answer fails schema", func(t *testing.T) {
		content := `[{"question_text": "Q", "options": ["A", "B"]}]`
		_, err := generator.parseQuestionArray("quiz", content)
		require.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("single option fails schema", func(t *testing.T) {
		content := `[{"question_text": "Q", "options": ["A"], "correct_answer": "A"}]`
		_, err := generator.parseQuestionArray("quiz", content)
		require.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("no json at all", func(t *testing.T) {
		_, err := generator.parseQuestionArray("quiz", "sorry, I cannot help with that")
		require.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("empty array fails schema", func(t *testing.T) {
		_, err := generator.parseQuestionArray("quiz", "[]")
		require.ErrorIs(t, err, ErrGeneration)
	})
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := buildQuizPrompt(QuizParams{Topic: "Fractions", Subject: "Mathematics", QuestionCount: 7, Difficulty: "Easy"})
	require.Contains(t, prompt, "7 multiple-choice questions")
	require.Contains(t, prompt, `"Fractions"`)
	require.Contains(t, prompt, "easy difficulty")
	require.Contains(t, prompt, "JSON array only")
}

func TestBuildQuizPromptDefaults(t *testing.T) {
	prompt := buildQuizPrompt(QuizParams{Topic: "Atoms", Subject: "Science"})
	require.Contains(t, prompt, "5 multiple-choice questions")
	require.Contains(t, prompt, "intermediate difficulty")
}

func TestBuildDoubtPrompt(t *testing.T) {
	withContext := buildDoubtPrompt(DoubtParams{Title: "Osmosis", QuestionText: "Why does water move?", Subject: "Biology", Context: "chapter 4"})
	require.Contains(t, withContext, "Context: chapter 4")

	withoutContext := buildDoubtPrompt(DoubtParams{Title: "Osmosis", QuestionText: "Why?", Subject: "Biology"})
	require.False(t, strings.Contains(withoutContext, "Context:"))
}

func TestDifficultyOrDefault(t *testing.T) {
	require.Equal(t, "intermediate", difficultyOrDefault(""))
	require.Equal(t, "intermediate", difficultyOrDefault("  "))
	require.Equal(t, "hard", difficultyOrDefault("Hard"))
}
