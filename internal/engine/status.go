package engine

import (
	"github.com/mentora-labs/mentora-api/internal/models"
)

// Counters pairs the received submission count with the expected roster size
// for an assignment.
type Counters struct {
	Received int `json:"received"`
	Total    int `json:"total"`
}

// ResolveSubmissionStatus returns the stored status verbatim. Lateness is a
// historical fact fixed when the submission arrived; it must never be
// recomputed from the current clock.
func ResolveSubmissionStatus(submission models.Submission) string {
	return submission.Status
}

// ResolveAssignmentCounters derives the received/total counters for an
// assignment from the submission collection. Total is the caller-supplied
// roster size and passes through unchanged.
func ResolveAssignmentCounters(assignmentID string, submissions []models.Submission, total int) Counters {
	received := 0
	for _, submission := range submissions {
		if submission.AssignmentID == assignmentID && submission.CountsAsReceived() {
			received++
		}
	}
	return Counters{Received: received, Total: total}
}

// StudentsNotSubmitted returns the roster entries with no counted submission
// for the assignment, preserving roster order.
func StudentsNotSubmitted(assignmentID string, submissions []models.Submission, roster []string) []string {
	received := make(map[string]struct{}, len(submissions))
	for _, submission := range submissions {
		if submission.AssignmentID == assignmentID && submission.CountsAsReceived() {
			received[submission.StudentName] = struct{}{}
		}
	}

	missing := make([]string, 0, len(roster))
	for _, student := range roster {
		if _, ok := received[student]; !ok {
			missing = append(missing, student)
		}
	}
	return missing
}

// ExpectedRecipients resolves the roster an assignment targets: the full
// roster for "all", or the assigned subset filtered to enrolled students,
// roster order preserved.
func ExpectedRecipients(assignment models.Assignment, roster []string) []string {
	if assignment.AssignTo != models.AssignToSpecific {
		return roster
	}

	assigned := make(map[string]struct{}, len(assignment.AssignedStudents))
	for _, student := range assignment.AssignedStudents {
		assigned[student] = struct{}{}
	}

	targeted := make([]string, 0, len(assignment.AssignedStudents))
	for _, student := range roster {
		if _, ok := assigned[student]; ok {
			targeted = append(targeted, student)
		}
	}
	return targeted
}

// ApplyCounters refreshes the derived counter fields on a copy of the
// assignment so every call site shares one derivation and the counters cannot
// drift from the submission set.
func ApplyCounters(assignment models.Assignment, submissions []models.Submission, roster []string) models.Assignment {
	recipients := ExpectedRecipients(assignment, roster)
	counters := ResolveAssignmentCounters(assignment.ID, submissions, len(recipients))

	assignment.SubmissionsReceived = counters.Received
	assignment.SubmissionsTotal = counters.Total
	assignment.StudentsNotSubmitted = StudentsNotSubmitted(assignment.ID, submissions, recipients)
	return assignment
}
