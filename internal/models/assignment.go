package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment statuses. The only legal transition is ongoing -> completed,
// triggered explicitly by a tutor action; a passed due date never flips it.
const (
	AssignmentStatusOngoing   = "ongoing"
	AssignmentStatusCompleted = "completed"
)

// Submission type options for an assignment.
const (
	SubmissionTypeFileUpload = "file_upload"
	SubmissionTypeLink       = "link"
	SubmissionTypeTextInput  = "text_input"
)

// Assignment targeting options.
const (
	AssignToAll      = "all"
	AssignToSpecific = "specific"
)

// TopicRef is the denormalized module/topic link stored on an assignment.
type TopicRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ModuleID string `json:"module_id"`
}

// Resource is an immutable attachment value carried by assignments and
// submissions.
type Resource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Assignment is a unit of work issued to students, linked to a course
// module/topic pair.
type Assignment struct {
	ID                   string                        `gorm:"primaryKey;size:64" json:"id"`
	Title                string                        `gorm:"size:255;not null" json:"title"`
	Description          string                        `gorm:"type:text" json:"description"`
	DueDate              time.Time                     `gorm:"not null" json:"due_date"`
	DueTime              string                        `gorm:"size:16" json:"due_time"`
	TotalPoints          int                           `gorm:"not null" json:"total_points"`
	SubmissionType       string                        `gorm:"size:32;not null" json:"submission_type"`
	AllowLateSubmission  bool                          `json:"allow_late_submission"`
	AssignTo             string                        `gorm:"size:16;not null" json:"assign_to"`
	AssignedStudents     datatypes.JSONSlice[string]   `json:"assigned_students"`
	LinkedTopic          *TopicRef                     `gorm:"serializer:json" json:"linked_topic,omitempty"`
	Attachments          datatypes.JSONSlice[Resource] `json:"attachments"`
	Status               string                        `gorm:"size:16;not null;default:ongoing" json:"status"`
	SubmissionsReceived  int                           `json:"submissions_received"`
	SubmissionsTotal     int                           `json:"submissions_total"`
	StudentsNotSubmitted datatypes.JSONSlice[string]   `json:"students_not_submitted"`
	CreatedAt            time.Time                     `json:"created_at"`
	UpdatedAt            time.Time                     `json:"updated_at"`
}

// IsCompleted reports whether the assignment reached its terminal status.
func (a Assignment) IsCompleted() bool {
	return a.Status == AssignmentStatusCompleted
}

// IsPastDue returns true when the assignment deadline has already passed.
// Informational only; it never drives a status transition.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
