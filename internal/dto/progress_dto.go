package dto

import (
	"github.com/google/uuid"
)

// CreateStatusRequest records a legacy status check.
type CreateStatusRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

// AssignmentProgress summarises a student's standing on one assignment.
type AssignmentProgress struct {
	AssignmentID   uuid.UUID `json:"assignment_id"`
	Title          string    `json:"title"`
	AttemptsUsed   int       `json:"attempts_used"`
	MaxAttempts    int       `json:"max_attempts"`
	BestScore      float64   `json:"best_score"`
	BestPercentage float64   `json:"best_percentage"`
	Passed         bool      `json:"passed"`
	LastStatus     string    `json:"last_status"`
}

// StudentProgressResponse aggregates a student's assignment history.
type StudentProgressResponse struct {
	TotalAssignments     int                  `json:"total_assignments"`
	CompletedAssignments int                  `json:"completed_assignments"`
	AveragePercentage    float64              `json:"average_percentage"`
	Progress             []AssignmentProgress `json:"progress"`
}

// TeacherDashboardResponse aggregates a teacher's headline numbers.
type TeacherDashboardResponse struct {
	TotalAssignments     int     `json:"total_assignments"`
	PublishedAssignments int     `json:"published_assignments"`
	TotalAttempts        int     `json:"total_attempts"`
	AveragePercentage    float64 `json:"average_percentage"`
	PassRate             float64 `json:"pass_rate"`
	LessonPlanCount      int     `json:"lesson_plan_count"`
}

// AssignmentAnalytics summarises submission outcomes for one assignment.
type AssignmentAnalytics struct {
	AssignmentID      uuid.UUID `json:"assignment_id"`
	Title             string    `json:"title"`
	AttemptCount      int       `json:"attempt_count"`
	AveragePercentage float64   `json:"average_percentage"`
	PassRate          float64   `json:"pass_rate"`
}

// TeacherAnalyticsResponse is the per-assignment breakdown for a teacher.
type TeacherAnalyticsResponse struct {
	Assignments []AssignmentAnalytics `json:"assignments"`
}
