package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/engine"
	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/notify"
	"github.com/mentora-labs/mentora-api/internal/observability"
	"github.com/mentora-labs/mentora-api/internal/repository"
	"github.com/mentora-labs/mentora-api/internal/roster"
)

// LifecycleService is the only component allowed to mutate the assignment and
// submission collections. Every operation re-validates its preconditions
// against the latest stored state at call time, so rapid repeated invocations
// fail cleanly instead of acting on a stale snapshot.
type LifecycleService interface {
	CreateAssignment(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	MarkAssignmentCompleted(ctx context.Context, id string) (dto.AssignmentResponse, error)
	GradeSubmission(ctx context.Context, id string, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error)
	SendReminders(ctx context.Context, assignmentID string) ([]string, error)
	GetAssignment(ctx context.Context, id string) (dto.AssignmentResponse, error)
	ListAssignments(ctx context.Context, status, search string) ([]dto.AssignmentResponse, error)
	ListSubmissions(ctx context.Context, query dto.SubmissionListQuery) ([]dto.SubmissionResponse, error)
	AssignmentCounters(ctx context.Context, assignmentID string) (engine.Counters, error)
	NonSubmitters(ctx context.Context, assignmentID string) ([]string, error)
	ListModules(ctx context.Context) ([]dto.ModuleResponse, error)
}

type lifecycleService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	modules     repository.ModuleRepository
	roster      roster.Provider
	classroomID string
	notifier    notify.Notifier
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewLifecycleService builds the lifecycle service over its collaborators.
func NewLifecycleService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	modules repository.ModuleRepository,
	rosterProvider roster.Provider,
	classroomID string,
	notifier notify.Notifier,
	validate *validator.Validate,
	logger zerolog.Logger,
) LifecycleService {
	return &lifecycleService{
		assignments: assignments,
		submissions: submissions,
		modules:     modules,
		roster:      rosterProvider,
		classroomID: classroomID,
		notifier:    notifier,
		validator:   validate,
		logger:      logger.With().Str("component", "lifecycle_service").Logger(),
		tracer:      otel.Tracer("github.com/mentora-labs/mentora-api/internal/service/lifecycle"),
		now:         time.Now,
	}
}

func (s *lifecycleService) CreateAssignment(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if strings.TrimSpace(payload.Title) == "" {
		return dto.AssignmentResponse{}, s.fail("create_assignment", engine.NewValidationError(engine.ReasonMissingTitle))
	}
	if strings.TrimSpace(payload.ModuleID) == "" || strings.TrimSpace(payload.TopicID) == "" {
		return dto.AssignmentResponse{}, s.fail("create_assignment", engine.NewValidationError(engine.ReasonMissingModuleOrTopic))
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, s.fail("create_assignment", err)
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, s.fail("create_assignment", err)
	}

	topicRef, err := s.resolveTopic(ctx, payload.ModuleID, payload.TopicID)
	if err != nil {
		return dto.AssignmentResponse{}, s.fail("create_assignment", err)
	}

	assignment := models.Assignment{
		ID:                  uuid.NewString(),
		Title:               strings.TrimSpace(payload.Title),
		Description:         payload.Description,
		DueDate:             dueDate,
		DueTime:             payload.DueTime,
		TotalPoints:         payload.TotalPoints,
		SubmissionType:      payload.SubmissionType,
		AllowLateSubmission: payload.AllowLateSubmission,
		AssignTo:            payload.AssignTo,
		AssignedStudents:    payload.AssignedStudents,
		LinkedTopic:         &topicRef,
		Attachments:         toResources(payload.Attachments),
		Status:              models.AssignmentStatusOngoing,
	}

	resolved, err := s.resolveCounters(ctx, assignment)
	if err != nil {
		return dto.AssignmentResponse{}, s.fail("create_assignment", err)
	}
	assignment = resolved

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, s.fail("create_assignment", err)
	}

	observability.LifecycleOperations().WithLabelValues("create_assignment", "success").Inc()
	s.logger.Info().Str("assignment_id", assignment.ID).Str("topic_id", topicRef.ID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *lifecycleService) UpdateAssignment(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	existing, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, s.fail("update_assignment", engine.NewNotFoundError("assignment", id))
		}
		return dto.AssignmentResponse{}, s.fail("update_assignment", err)
	}

	if strings.TrimSpace(payload.Title) == "" {
		return dto.AssignmentResponse{}, s.fail("update_assignment", engine.NewValidationError(engine.ReasonMissingTitle))
	}
	if strings.TrimSpace(payload.ModuleID) == "" || strings.TrimSpace(payload.TopicID) == "" {
		return dto.AssignmentResponse{}, s.fail("update_assignment", engine.NewValidationError(engine.ReasonMissingModuleOrTopic))
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, s.fail("update_assignment", err)
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, s.fail("update_assignment", err)
	}

	topicRef, err := s.resolveTopic(ctx, payload.ModuleID, payload.TopicID)
	if err != nil {
		return dto.AssignmentResponse{}, s.fail("update_assignment", err)
	}

	// Full overwrite of the editable fields; identity, status, and creation
	// time survive the replacement. Stored submission statuses are untouched
	// even when the due date moves.
	updated := existing
	updated.Title = strings.TrimSpace(payload.Title)
	updated.Description = payload.Description
	updated.DueDate = dueDate
	updated.DueTime = payload.DueTime
	updated.TotalPoints = payload.TotalPoints
	updated.SubmissionType = payload.SubmissionType
	updated.AllowLateSubmission = payload.AllowLateSubmission
	updated.AssignTo = payload.AssignTo
	updated.AssignedStudents = payload.AssignedStudents
	updated.LinkedTopic = &topicRef
	updated.Attachments = toResources(payload.Attachments)

	resolved, err := s.resolveCounters(ctx, updated)
	if err != nil {
		return dto.AssignmentResponse{}, s.fail("update_assignment", err)
	}
	updated = resolved

	if err := s.assignments.Update(ctx, &updated); err != nil {
		return dto.AssignmentResponse{}, s.fail("update_assignment", err)
	}

	observability.LifecycleOperations().WithLabelValues("update_assignment", "success").Inc()
	s.logger.Info().Str("assignment_id", updated.ID).Msg("assignment updated")

	return dto.NewAssignmentResponse(updated), nil
}

func (s *lifecycleService) MarkAssignmentCompleted(ctx context.Context, id string) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, s.fail("mark_completed", engine.NewNotFoundError("assignment", id))
		}
		return dto.AssignmentResponse{}, s.fail("mark_completed", err)
	}

	if assignment.IsCompleted() {
		return dto.AssignmentResponse{}, s.fail("mark_completed", engine.NewInvalidTransitionError(engine.ReasonAlreadyCompleted))
	}

	assignment.Status = models.AssignmentStatusCompleted
	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, s.fail("mark_completed", err)
	}

	observability.LifecycleOperations().WithLabelValues("mark_completed", "success").Inc()
	s.logger.Info().Str("assignment_id", assignment.ID).Msg("assignment marked completed")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *lifecycleService) GradeSubmission(ctx context.Context, id string, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "lifecycle.grade", trace.WithAttributes(
		attribute.String("grading.submission_id", id),
	))
	defer span.End()

	if strings.TrimSpace(payload.Grade) == "" {
		err := engine.NewValidationError(engine.ReasonMissingGrade)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing_grade")
		return dto.SubmissionResponse{}, s.fail("grade_submission", err)
	}
	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, s.fail("grade_submission", err)
	}

	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = engine.NewNotFoundError("submission", id)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_lookup_failed")
		return dto.SubmissionResponse{}, s.fail("grade_submission", err)
	}

	if !submission.CanBeGraded() {
		reason := engine.ReasonNotSubmitted
		if submission.IsGraded() {
			reason = engine.ReasonAlreadyGraded
		}
		err := engine.NewInvalidTransitionError(reason)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return dto.SubmissionResponse{}, s.fail("grade_submission", err)
	}

	submission.Status = models.SubmissionStatusGraded
	submission.Grade = strings.TrimSpace(payload.Grade)
	submission.Feedback = strings.TrimSpace(payload.Feedback)

	if err := s.submissions.Update(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_update_failed")
		return dto.SubmissionResponse{}, s.fail("grade_submission", err)
	}

	s.refreshAssignmentCounters(ctx, submission.AssignmentID)

	observability.LifecycleOperations().WithLabelValues("grade_submission", "success").Inc()
	span.SetAttributes(attribute.String("grading.status", submission.Status))
	s.logger.Info().Str("submission_id", submission.ID).Str("grade", submission.Grade).Msg("submission graded")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *lifecycleService) SendReminders(ctx context.Context, assignmentID string) ([]string, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.fail("send_reminders", engine.NewNotFoundError("assignment", assignmentID))
		}
		return nil, s.fail("send_reminders", err)
	}

	recipients, err := s.nonSubmitters(ctx, assignment)
	if err != nil {
		return nil, s.fail("send_reminders", err)
	}

	if len(recipients) == 0 {
		return nil, s.fail("send_reminders", engine.NewValidationError(engine.ReasonEmptyRecipientList))
	}

	// Fire and forget: the engine validates and forwards, delivery outcome is
	// the transport's problem.
	if err := s.notifier.Notify(ctx, recipients, notify.ReminderContext{
		AssignmentID:    assignment.ID,
		AssignmentTitle: assignment.Title,
	}); err != nil {
		s.logger.Warn().Err(err).Str("assignment_id", assignment.ID).Msg("failed to forward reminder to notifier")
	}

	observability.LifecycleOperations().WithLabelValues("send_reminders", "success").Inc()
	s.logger.Info().Str("assignment_id", assignment.ID).Int("recipients", len(recipients)).Msg("reminders requested")

	return recipients, nil
}

func (s *lifecycleService) GetAssignment(ctx context.Context, id string) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, engine.NewNotFoundError("assignment", id)
		}
		return dto.AssignmentResponse{}, err
	}

	resolved, err := s.resolveCounters(ctx, assignment)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(resolved), nil
}

func (s *lifecycleService) ListAssignments(ctx context.Context, status, search string) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		return nil, err
	}

	names, err := s.roster.ListStudents(ctx, s.classroomID)
	if err != nil {
		return nil, err
	}

	for i := range assignments {
		assignments[i] = engine.ApplyCounters(assignments[i], submissions, names)
	}

	if status != "" {
		assignments = engine.FilterAssignmentsByStatus(assignments, status)
	}
	assignments = engine.SearchAssignments(assignments, search)

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *lifecycleService) ListSubmissions(ctx context.Context, query dto.SubmissionListQuery) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: query.AssignmentID})
	if err != nil {
		return nil, err
	}

	filtered := engine.FilterSubmissions(submissions, engine.SubmissionQuery{
		Search: query.Search,
		Status: query.Status,
	})

	return dto.NewSubmissionResponseSlice(filtered), nil
}

func (s *lifecycleService) AssignmentCounters(ctx context.Context, assignmentID string) (engine.Counters, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return engine.Counters{}, engine.NewNotFoundError("assignment", assignmentID)
		}
		return engine.Counters{}, err
	}

	resolved, err := s.resolveCounters(ctx, assignment)
	if err != nil {
		return engine.Counters{}, err
	}

	return engine.Counters{Received: resolved.SubmissionsReceived, Total: resolved.SubmissionsTotal}, nil
}

func (s *lifecycleService) NonSubmitters(ctx context.Context, assignmentID string) ([]string, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engine.NewNotFoundError("assignment", assignmentID)
		}
		return nil, err
	}

	return s.nonSubmitters(ctx, assignment)
}

func (s *lifecycleService) ListModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewModuleResponseSlice(modules), nil
}

// resolveTopic validates the module/topic pair against the authoring system
// and returns the denormalized reference stored on the assignment.
func (s *lifecycleService) resolveTopic(ctx context.Context, moduleID, topicID string) (models.TopicRef, error) {
	module, err := s.modules.GetByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TopicRef{}, engine.NewValidationError(engine.ReasonInvalidModuleTopicPair)
		}
		return models.TopicRef{}, err
	}

	topic, ok := module.FindTopic(topicID)
	if !ok {
		return models.TopicRef{}, engine.NewValidationError(engine.ReasonInvalidModuleTopicPair)
	}

	return models.TopicRef{ID: topic.ID, Name: topic.Name, ModuleID: module.ID}, nil
}

func (s *lifecycleService) resolveCounters(ctx context.Context, assignment models.Assignment) (models.Assignment, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: assignment.ID})
	if err != nil {
		return models.Assignment{}, err
	}

	names, err := s.roster.ListStudents(ctx, s.classroomID)
	if err != nil {
		return models.Assignment{}, err
	}

	return engine.ApplyCounters(assignment, submissions, names), nil
}

func (s *lifecycleService) nonSubmitters(ctx context.Context, assignment models.Assignment) ([]string, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: assignment.ID})
	if err != nil {
		return nil, err
	}

	names, err := s.roster.ListStudents(ctx, s.classroomID)
	if err != nil {
		return nil, err
	}

	recipients := engine.ExpectedRecipients(assignment, names)
	return engine.StudentsNotSubmitted(assignment.ID, submissions, recipients), nil
}

// refreshAssignmentCounters re-derives and persists the counters on the
// assignment a mutated submission belongs to. Best effort: a failed refresh
// is logged, never surfaced, since the counters are re-derived on every read
// anyway.
func (s *lifecycleService) refreshAssignmentCounters(ctx context.Context, assignmentID string) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Str("assignment_id", assignmentID).Msg("failed to load assignment for counter refresh")
		}
		return
	}

	resolved, err := s.resolveCounters(ctx, assignment)
	if err != nil {
		s.logger.Warn().Err(err).Str("assignment_id", assignmentID).Msg("failed to re-derive counters")
		return
	}

	if err := s.assignments.Update(ctx, &resolved); err != nil {
		s.logger.Warn().Err(err).Str("assignment_id", assignmentID).Msg("failed to persist refreshed counters")
	}
}

func (s *lifecycleService) fail(operation string, err error) error {
	observability.LifecycleOperations().WithLabelValues(operation, "error").Inc()
	return err
}

func toResources(payloads []dto.ResourcePayload) []models.Resource {
	if len(payloads) == 0 {
		return nil
	}
	resources := make([]models.Resource, 0, len(payloads))
	for _, payload := range payloads {
		resources = append(resources, models.Resource{Name: payload.Name, Type: payload.Type, Size: payload.Size})
	}
	return resources
}
