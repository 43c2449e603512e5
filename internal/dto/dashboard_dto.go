package dto

import "time"

// AssignmentProgress summarizes one assignment's collection state for the
// tutor dashboard.
type AssignmentProgress struct {
	AssignmentID    string    `json:"assignment_id"`
	Title           string    `json:"title"`
	DueDate         time.Time `json:"due_date"`
	Status          string    `json:"status"`
	Received        int       `json:"received"`
	Total           int       `json:"total"`
	Graded          int       `json:"graded"`
	Late            int       `json:"late"`
	NotSubmitted    int       `json:"not_submitted"`
	CompletionRatio float64   `json:"completion_ratio"`
}

// TutorDashboardResponse aggregates progress across all assignments.
type TutorDashboardResponse struct {
	Ongoing     int                  `json:"ongoing"`
	Completed   int                  `json:"completed"`
	Assignments []AssignmentProgress `json:"assignments"`
	GeneratedAt time.Time            `json:"generated_at"`
}
