package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission statuses. "late" is a fact recorded at submission time relative
// to the due date then in force; it is never recomputed from the wall clock.
const (
	// SubmissionStatusSubmitted indicates the work arrived before the deadline.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusLate indicates the work arrived after the deadline.
	SubmissionStatusLate = "late"
	// SubmissionStatusNotSubmitted indicates no work has arrived.
	SubmissionStatusNotSubmitted = "not_submitted"
	// SubmissionStatusGraded indicates the submission has been evaluated.
	SubmissionStatusGraded = "graded"
)

// Submission is a student's response to an assignment.
//
// At most one submission should exist per (assignment, student) pair; the
// engine treats this as a precondition of the dataset rather than enforcing
// it on every write.
type Submission struct {
	ID             string                        `gorm:"primaryKey;size:64" json:"id"`
	StudentName    string                        `gorm:"size:255;not null;index" json:"student_name"`
	AssignmentID   string                        `gorm:"size:64;not null;index" json:"assignment_id"`
	AssignmentName string                        `gorm:"size:255" json:"assignment_name"`
	DueDate        time.Time                     `json:"due_date"`
	TotalPoints    int                           `json:"total_points"`
	SubmittedAt    *time.Time                    `json:"submitted_at,omitempty"`
	Status         string                        `gorm:"size:32;not null" json:"status"`
	Grade          string                        `gorm:"size:32" json:"grade,omitempty"`
	Feedback       string                        `gorm:"type:text" json:"feedback,omitempty"`
	Attachments    datatypes.JSONSlice[Resource] `json:"attachments"`
	Content        string                        `gorm:"type:text" json:"content,omitempty"`
	CreatedAt      time.Time                     `json:"created_at"`
	UpdatedAt      time.Time                     `json:"updated_at"`
}

// IsGraded reports whether the submission has a final grade.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// CountsAsReceived reports whether the submission counts toward an
// assignment's received counter.
func (s Submission) CountsAsReceived() bool {
	return s.Status != SubmissionStatusNotSubmitted
}

// CanBeGraded reports whether grading is a legal transition for the
// submission's current status.
func (s Submission) CanBeGraded() bool {
	return s.Status == SubmissionStatusSubmitted || s.Status == SubmissionStatusLate
}
