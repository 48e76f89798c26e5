package router

import (
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/handler"
)

const idSegment = `([^/]+)`

// Handlers groups everything the route table dispatches to.
type Handlers struct {
	Public     *handler.PublicHandler
	Quiz       *handler.QuizHandler
	StudyGroup *handler.StudyGroupHandler
	Doubt      *handler.DoubtHandler
	Progress   *handler.ProgressHandler
	Teacher    *handler.TeacherHandler
}

// New assembles the full dispatch table. Rules are matched in order, so the
// fixed routes that share a prefix with a parameterized pattern come first.
func New(h Handlers, logger zerolog.Logger) *Table {
	rules := []Rule{
		Get("/", h.Public.Hello),
		Get("/root", h.Public.Hello),
		Get("/db-test", h.Public.DBTest),
		Post("/init-demo-schools", h.Public.InitDemoSchools),
		Post("/status", h.Public.CreateStatus),
		Get("/status", h.Public.ListStatus),

		Get("/subjects", h.Public.Subjects),

		Post("/assignments/generate-quiz", h.Quiz.GenerateQuiz),
		Get("/assignments", h.Quiz.ListAssignments),
		GetMatch("/assignments/"+idSegment+"/questions", h.Quiz.Questions),
		PostMatch("/assignments/"+idSegment+"/start", h.Quiz.StartAttempt),
		PostMatch("/assignments/"+idSegment+"/submit", h.Quiz.SubmitAttempt),

		Post("/study-groups/join", h.StudyGroup.Join),
		Post("/study-groups", h.StudyGroup.Create),
		Get("/study-groups", h.StudyGroup.List),
		PostMatch("/study-groups/"+idSegment+"/chat", h.StudyGroup.SendChat),
		GetMatch("/study-groups/"+idSegment+"/chat", h.StudyGroup.ChatHistory),

		Post("/doubts", h.Doubt.Create),
		Get("/doubts", h.Doubt.List),

		Get("/student/progress", h.Progress.StudentProgress),

		Get("/teacher/dashboard", h.Teacher.Dashboard),
		Get("/teacher/analytics", h.Teacher.Analytics),
		Post("/teacher/lesson-plans", h.Teacher.CreateLessonPlan),
		Get("/teacher/lesson-plans", h.Teacher.ListLessonPlans),
		PutMatch("/teacher/lesson-plans/"+idSegment, h.Teacher.UpdateLessonPlan),
		DeleteMatch("/teacher/lesson-plans/"+idSegment, h.Teacher.DeleteLessonPlan),
		Post("/teacher/assignments", h.Teacher.CreateAssignment),
		Get("/teacher/assignments", h.Teacher.ListAssignments),
		PutMatch("/teacher/assignments/"+idSegment+"/publish", h.Teacher.PublishAssignment),
		Get("/teacher/gradebook", h.Teacher.Gradebook),
		PutMatch("/teacher/gradebook/"+idSegment, h.Teacher.OverrideGrade),
		Post("/teacher/pdf-assessments", h.Teacher.CreateAssessment),
		Get("/teacher/pdf-assessments", h.Teacher.ListAssessments),
		Post("/teacher/messages", h.Teacher.SendMessage),
		Get("/teacher/messages", h.Teacher.ListMessages),
	}

	return NewTable(rules, logger)
}
