package dto

// SelectionRequest names the entity a selection slot should point at.
type SelectionRequest struct {
	ID string `json:"id" validate:"required"`
}

// ViewStateRequest carries the search and filter inputs for the current view.
type ViewStateRequest struct {
	SearchTerm   string `json:"search_term"`
	StatusFilter string `json:"status_filter" validate:"omitempty,oneof=all submitted late not_submitted graded"`
}

// SelectionViewState reports the coordinator's current slots and inputs.
type SelectionViewState struct {
	SelectedAssignmentID string `json:"selected_assignment_id,omitempty"`
	SelectedSubmissionID string `json:"selected_submission_id,omitempty"`
	SearchTerm           string `json:"search_term"`
	StatusFilter         string `json:"status_filter"`
}
