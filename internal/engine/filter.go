package engine

import (
	"strings"

	"github.com/mentora-labs/mentora-api/internal/models"
)

// StatusFilterAll matches every submission status.
const StatusFilterAll = "all"

// SubmissionQuery describes the conjunctive predicates applied when filtering
// submissions. Zero values match everything.
type SubmissionQuery struct {
	Search string
	Status string
}

// FilterAssignmentsByStatus returns the assignments whose status matches,
// preserving input order. The input slice is never mutated.
func FilterAssignmentsByStatus(assignments []models.Assignment, status string) []models.Assignment {
	filtered := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Status == status {
			filtered = append(filtered, assignment)
		}
	}
	return filtered
}

// SearchAssignments returns the assignments whose title or description
// contains the term, case-insensitively. An empty term matches all.
func SearchAssignments(assignments []models.Assignment, term string) []models.Assignment {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]models.Assignment(nil), assignments...)
	}

	filtered := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		title := strings.ToLower(assignment.Title)
		description := strings.ToLower(assignment.Description)
		if strings.Contains(title, term) || strings.Contains(description, term) {
			filtered = append(filtered, assignment)
		}
	}
	return filtered
}

// FilterSubmissions applies the query's search and status predicates
// conjunctively, preserving input order. Identical inputs always yield
// identical outputs; callers slice for pagination if they need it.
func FilterSubmissions(submissions []models.Submission, query SubmissionQuery) []models.Submission {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	status := strings.TrimSpace(query.Status)

	filtered := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if !matchesSearch(submission, search) {
			continue
		}
		if !matchesStatus(submission, status) {
			continue
		}
		filtered = append(filtered, submission)
	}
	return filtered
}

func matchesSearch(submission models.Submission, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(submission.StudentName), search) {
		return true
	}
	return submission.AssignmentName != "" &&
		strings.Contains(strings.ToLower(submission.AssignmentName), search)
}

func matchesStatus(submission models.Submission, status string) bool {
	if status == "" || status == StatusFilterAll {
		return true
	}
	return submission.Status == status
}
