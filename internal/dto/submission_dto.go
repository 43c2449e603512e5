package dto

import (
	"time"

	"github.com/mentora-labs/mentora-api/internal/models"
)

// GradeSubmissionRequest carries a grade and optional feedback for a
// submission. Grade formatting against the assignment's point scale is the
// caller's concern; the engine only requires presence.
type GradeSubmissionRequest struct {
	Grade    string `json:"grade" validate:"required,min=1"`
	Feedback string `json:"feedback" validate:"omitempty"`
}

// SubmissionListQuery describes the search and status filters for listing
// submissions.
type SubmissionListQuery struct {
	AssignmentID string `query:"assignment_id"`
	Search       string `query:"search"`
	Status       string `query:"status" validate:"omitempty,oneof=all submitted late not_submitted graded"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID             string             `json:"id"`
	StudentName    string             `json:"student_name"`
	AssignmentID   string             `json:"assignment_id"`
	AssignmentName string             `json:"assignment_name"`
	DueDate        time.Time          `json:"due_date"`
	TotalPoints    int                `json:"total_points"`
	SubmittedAt    *time.Time         `json:"submitted_at,omitempty"`
	Status         string             `json:"status"`
	Grade          string             `json:"grade,omitempty"`
	Feedback       string             `json:"feedback,omitempty"`
	Attachments    []ResourceResponse `json:"attachments,omitempty"`
	Content        string             `json:"content,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:             model.ID,
		StudentName:    model.StudentName,
		AssignmentID:   model.AssignmentID,
		AssignmentName: model.AssignmentName,
		DueDate:        model.DueDate,
		TotalPoints:    model.TotalPoints,
		SubmittedAt:    model.SubmittedAt,
		Status:         model.Status,
		Grade:          model.Grade,
		Feedback:       model.Feedback,
		Content:        model.Content,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}

	if len(model.Attachments) > 0 {
		attachments := make([]ResourceResponse, 0, len(model.Attachments))
		for _, resource := range model.Attachments {
			attachments = append(attachments, ResourceResponse(resource))
		}
		response.Attachments = attachments
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
