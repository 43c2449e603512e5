package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/engine"
	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/repository"
	"github.com/mentora-labs/mentora-api/internal/roster"
)

// TutorDashboardService produces aggregated collection-progress metrics for
// the tutor surface. Results are cached with a TTL; staleness is bounded by
// the TTL, the counters themselves are always re-derived from the raw
// collections on rebuild.
type TutorDashboardService interface {
	GetDashboard(ctx context.Context, classroomID string) (dto.TutorDashboardResponse, error)
}

type tutorDashboardService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	roster      roster.Provider
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewTutorDashboardService builds the dashboard aggregator.
func NewTutorDashboardService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	rosterProvider roster.Provider,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) TutorDashboardService {
	return &tutorDashboardService{
		assignments: assignments,
		submissions: submissions,
		roster:      rosterProvider,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "tutor_dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *tutorDashboardService) GetDashboard(ctx context.Context, classroomID string) (dto.TutorDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:tutor:%s", classroomID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.TutorDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("classroom_id", classroomID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return dto.TutorDashboardResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		return dto.TutorDashboardResponse{}, err
	}

	names, err := s.roster.ListStudents(ctx, classroomID)
	if err != nil {
		return dto.TutorDashboardResponse{}, err
	}

	response := s.buildResponse(assignments, submissions, names)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *tutorDashboardService) buildResponse(assignments []models.Assignment, submissions []models.Submission, names []string) dto.TutorDashboardResponse {
	response := dto.TutorDashboardResponse{
		Assignments: make([]dto.AssignmentProgress, 0, len(assignments)),
		GeneratedAt: s.now().UTC(),
	}

	for _, assignment := range assignments {
		if assignment.IsCompleted() {
			response.Completed++
		} else {
			response.Ongoing++
		}

		recipients := engine.ExpectedRecipients(assignment, names)
		counters := engine.ResolveAssignmentCounters(assignment.ID, submissions, len(recipients))

		graded := 0
		late := 0
		for _, submission := range submissions {
			if submission.AssignmentID != assignment.ID {
				continue
			}
			switch submission.Status {
			case models.SubmissionStatusGraded:
				graded++
			case models.SubmissionStatusLate:
				late++
			}
		}

		progress := dto.AssignmentProgress{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			DueDate:      assignment.DueDate,
			Status:       assignment.Status,
			Received:     counters.Received,
			Total:        counters.Total,
			Graded:       graded,
			Late:         late,
			NotSubmitted: len(engine.StudentsNotSubmitted(assignment.ID, submissions, recipients)),
		}
		if counters.Total > 0 {
			progress.CompletionRatio = float64(counters.Received) / float64(counters.Total)
		}

		response.Assignments = append(response.Assignments, progress)
	}

	return response
}
