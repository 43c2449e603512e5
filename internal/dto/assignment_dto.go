package dto

import (
	"time"

	"github.com/mentora-labs/mentora-api/internal/models"
)

// ResourcePayload describes an attachment reference supplied by the caller.
// The engine stores the descriptor only; upload and storage happen elsewhere.
type ResourcePayload struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size" validate:"gte=0"`
}

// AssignmentCreateRequest describes the payload for creating a new assignment.
// Title and the module/topic pair are validated by the lifecycle service so
// the failure carries the precise reason; the tags cover shape only.
type AssignmentCreateRequest struct {
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	DueDate             string            `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DueTime             string            `json:"due_time" validate:"omitempty"`
	TotalPoints         int               `json:"total_points" validate:"gte=0"`
	SubmissionType      string            `json:"submission_type" validate:"required,oneof=file_upload link text_input"`
	AllowLateSubmission bool              `json:"allow_late_submission"`
	AssignTo            string            `json:"assign_to" validate:"required,oneof=all specific"`
	AssignedStudents    []string          `json:"assigned_students" validate:"omitempty,dive,min=1"`
	ModuleID            string            `json:"module_id"`
	TopicID             string            `json:"topic_id"`
	Attachments         []ResourcePayload `json:"attachments" validate:"omitempty,dive"`
}

// AssignmentUpdateRequest carries a full replacement of an assignment's
// editable fields. Identity and status are preserved by the service.
type AssignmentUpdateRequest struct {
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	DueDate             string            `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DueTime             string            `json:"due_time" validate:"omitempty"`
	TotalPoints         int               `json:"total_points" validate:"gte=0"`
	SubmissionType      string            `json:"submission_type" validate:"required,oneof=file_upload link text_input"`
	AllowLateSubmission bool              `json:"allow_late_submission"`
	AssignTo            string            `json:"assign_to" validate:"required,oneof=all specific"`
	AssignedStudents    []string          `json:"assigned_students" validate:"omitempty,dive,min=1"`
	ModuleID            string            `json:"module_id"`
	TopicID             string            `json:"topic_id"`
	Attachments         []ResourcePayload `json:"attachments" validate:"omitempty,dive"`
}

// TopicRefResponse serializes the denormalized module/topic link.
type TopicRefResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ModuleID string `json:"module_id"`
}

// ResourceResponse serializes an attachment descriptor.
type ResourceResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// SubmissionCounters serializes the derived received/total pair.
type SubmissionCounters struct {
	Received int `json:"received"`
	Total    int `json:"total"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	DueDate              time.Time          `json:"due_date"`
	DueTime              string             `json:"due_time,omitempty"`
	TotalPoints          int                `json:"total_points"`
	SubmissionType       string             `json:"submission_type"`
	AllowLateSubmission  bool               `json:"allow_late_submission"`
	AssignTo             string             `json:"assign_to"`
	AssignedStudents     []string           `json:"assigned_students,omitempty"`
	LinkedTopic          *TopicRefResponse  `json:"linked_topic,omitempty"`
	Attachments          []ResourceResponse `json:"attachments,omitempty"`
	Status               string             `json:"status"`
	Submissions          SubmissionCounters `json:"submissions"`
	StudentsNotSubmitted []string           `json:"students_not_submitted,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:                   model.ID,
		Title:                model.Title,
		Description:          model.Description,
		DueDate:              model.DueDate,
		DueTime:              model.DueTime,
		TotalPoints:          model.TotalPoints,
		SubmissionType:       model.SubmissionType,
		AllowLateSubmission:  model.AllowLateSubmission,
		AssignTo:             model.AssignTo,
		AssignedStudents:     model.AssignedStudents,
		Status:               model.Status,
		Submissions:          SubmissionCounters{Received: model.SubmissionsReceived, Total: model.SubmissionsTotal},
		StudentsNotSubmitted: model.StudentsNotSubmitted,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}

	if model.LinkedTopic != nil {
		response.LinkedTopic = &TopicRefResponse{
			ID:       model.LinkedTopic.ID,
			Name:     model.LinkedTopic.Name,
			ModuleID: model.LinkedTopic.ModuleID,
		}
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

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
