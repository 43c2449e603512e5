package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/engine"
	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/repository"
)

// SelectionService tracks which assignment and submission the tutor surface
// currently targets, plus the active search/filter inputs, and serves the
// categorized projections derived from them. Selections hold ids only; an id
// that no longer resolves against the backing collection reads as none.
type SelectionService interface {
	SelectAssignment(ctx context.Context, id string) error
	ClearAssignmentSelection()
	SelectedAssignment(ctx context.Context) (dto.AssignmentResponse, bool)

	SelectSubmission(ctx context.Context, id string) error
	ClearSubmissionSelection()
	SelectedSubmission(ctx context.Context) (dto.SubmissionResponse, bool)

	SetSearchTerm(term string)
	SetStatusFilter(status string)
	ViewState() dto.SelectionViewState

	OngoingAssignments(ctx context.Context) ([]dto.AssignmentResponse, error)
	CompletedAssignments(ctx context.Context) ([]dto.AssignmentResponse, error)
	FilteredSubmissions(ctx context.Context, assignmentID string) ([]dto.SubmissionResponse, error)
}

type selectionService struct {
	mu sync.RWMutex

	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	lifecycle   LifecycleService
	logger      zerolog.Logger

	selectedAssignmentID string
	selectedSubmissionID string
	searchTerm           string
	statusFilter         string
}

// NewSelectionService builds a selection coordinator over the backing
// collections.
func NewSelectionService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	lifecycle LifecycleService,
	logger zerolog.Logger,
) SelectionService {
	return &selectionService{
		assignments:  assignments,
		submissions:  submissions,
		lifecycle:    lifecycle,
		logger:       logger.With().Str("component", "selection_service").Logger(),
		statusFilter: engine.StatusFilterAll,
	}
}

func (s *selectionService) SelectAssignment(ctx context.Context, id string) error {
	if _, err := s.assignments.GetByID(ctx, id); err != nil {
		return engine.NewNotFoundError("assignment", id)
	}

	s.mu.Lock()
	s.selectedAssignmentID = id
	s.mu.Unlock()
	return nil
}

func (s *selectionService) ClearAssignmentSelection() {
	s.mu.Lock()
	s.selectedAssignmentID = ""
	s.mu.Unlock()
}

func (s *selectionService) SelectedAssignment(ctx context.Context) (dto.AssignmentResponse, bool) {
	s.mu.RLock()
	id := s.selectedAssignmentID
	s.mu.RUnlock()

	if id == "" {
		return dto.AssignmentResponse{}, false
	}

	assignment, err := s.lifecycle.GetAssignment(ctx, id)
	if err != nil {
		// The backing entity vanished underneath the selection; resolve to
		// none rather than serving a stale copy.
		if engine.IsNotFound(err) {
			s.ClearAssignmentSelection()
		} else {
			s.logger.Warn().Err(err).Str("assignment_id", id).Msg("failed to resolve selected assignment")
		}
		return dto.AssignmentResponse{}, false
	}

	return assignment, true
}

func (s *selectionService) SelectSubmission(ctx context.Context, id string) error {
	if _, err := s.submissions.GetByID(ctx, id); err != nil {
		return engine.NewNotFoundError("submission", id)
	}

	s.mu.Lock()
	s.selectedSubmissionID = id
	s.mu.Unlock()
	return nil
}

func (s *selectionService) ClearSubmissionSelection() {
	s.mu.Lock()
	s.selectedSubmissionID = ""
	s.mu.Unlock()
}

func (s *selectionService) SelectedSubmission(ctx context.Context) (dto.SubmissionResponse, bool) {
	s.mu.RLock()
	id := s.selectedSubmissionID
	s.mu.RUnlock()

	if id == "" {
		return dto.SubmissionResponse{}, false
	}

	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		s.ClearSubmissionSelection()
		return dto.SubmissionResponse{}, false
	}

	return dto.NewSubmissionResponse(submission), true
}

func (s *selectionService) SetSearchTerm(term string) {
	s.mu.Lock()
	s.searchTerm = term
	s.mu.Unlock()
}

func (s *selectionService) SetStatusFilter(status string) {
	if status == "" {
		status = engine.StatusFilterAll
	}
	s.mu.Lock()
	s.statusFilter = status
	s.mu.Unlock()
}

func (s *selectionService) ViewState() dto.SelectionViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.SelectionViewState{
		SelectedAssignmentID: s.selectedAssignmentID,
		SelectedSubmissionID: s.selectedSubmissionID,
		SearchTerm:           s.searchTerm,
		StatusFilter:         s.statusFilter,
	}
}

func (s *selectionService) OngoingAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	s.mu.RLock()
	term := s.searchTerm
	s.mu.RUnlock()
	return s.lifecycle.ListAssignments(ctx, models.AssignmentStatusOngoing, term)
}

func (s *selectionService) CompletedAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	s.mu.RLock()
	term := s.searchTerm
	s.mu.RUnlock()
	return s.lifecycle.ListAssignments(ctx, models.AssignmentStatusCompleted, term)
}

func (s *selectionService) FilteredSubmissions(ctx context.Context, assignmentID string) ([]dto.SubmissionResponse, error) {
	s.mu.RLock()
	term := s.searchTerm
	status := s.statusFilter
	s.mu.RUnlock()

	return s.lifecycle.ListSubmissions(ctx, dto.SubmissionListQuery{
		AssignmentID: assignmentID,
		Search:       term,
		Status:       status,
	})
}
