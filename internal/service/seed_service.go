package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedDuplicateSubmission indicates the dataset violates the one
	// submission per (assignment, student) precondition.
	ErrSeedDuplicateSubmission = errors.New("duplicate submission for assignment/student pair")
)

// SeedService loads demo datasets into the collections. Intended for
// development environments only; production deployments disable it.
type SeedService interface {
	SeedAssignments(ctx context.Context, assignments []models.Assignment) (int, error)
	SeedSubmissions(ctx context.Context, submissions []models.Submission) (int, error)
	SeedStudents(ctx context.Context, students []models.Student) (int, error)
}

type seedService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	enabled     bool
	logger      zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	students repository.StudentRepository,
	enabled bool,
	logger zerolog.Logger,
) SeedService {
	return &seedService{
		assignments: assignments,
		submissions: submissions,
		students:    students,
		enabled:     enabled,
		logger:      logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedAssignments(ctx context.Context, assignments []models.Assignment) (int, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}

	count := 0
	for i := range assignments {
		assignment := assignments[i]
		if assignment.ID == "" {
			assignment.ID = uuid.NewString()
		}
		if assignment.Status == "" {
			assignment.Status = models.AssignmentStatusOngoing
		}
		if err := s.assignments.Create(ctx, &assignment); err != nil {
			return count, err
		}
		count++
	}

	s.logger.Info().Int("count", count).Msg("assignments seeded")
	return count, nil
}

func (s *seedService) SeedSubmissions(ctx context.Context, submissions []models.Submission) (int, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}

	// The engine treats (assignment, student) uniqueness as a dataset
	// precondition; the seed path is the one writer that checks it.
	seen := make(map[string]struct{}, len(submissions))
	count := 0
	for i := range submissions {
		submission := submissions[i]
		key := submission.AssignmentID + "\x00" + strings.ToLower(submission.StudentName)
		if _, dup := seen[key]; dup {
			return count, ErrSeedDuplicateSubmission
		}
		seen[key] = struct{}{}

		if submission.ID == "" {
			submission.ID = uuid.NewString()
		}
		if submission.Status == "" {
			submission.Status = models.SubmissionStatusNotSubmitted
		}
		if submission.Status == models.SubmissionStatusNotSubmitted {
			submission.SubmittedAt = nil
			submission.Content = ""
			submission.Attachments = nil
			submission.Grade = ""
		} else if submission.SubmittedAt == nil {
			now := time.Now()
			submission.SubmittedAt = &now
		}

		if err := s.submissions.Create(ctx, &submission); err != nil {
			return count, err
		}
		count++
	}

	s.logger.Info().Int("count", count).Msg("submissions seeded")
	return count, nil
}

func (s *seedService) SeedStudents(ctx context.Context, students []models.Student) (int, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}

	count := 0
	for i := range students {
		student := students[i]
		if err := s.students.Create(ctx, &student); err != nil {
			return count, err
		}
		count++
	}

	s.logger.Info().Int("count", count).Msg("students seeded")
	return count, nil
}
