package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/engine"
	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/notify"
	"github.com/mentora-labs/mentora-api/internal/repository"
	"github.com/mentora-labs/mentora-api/internal/roster"
)

type recordingNotifier struct {
	calls      int
	recipients []string
	reminder   notify.ReminderContext
}

func (n *recordingNotifier) Notify(_ context.Context, recipients []string, reminder notify.ReminderContext) error {
	n.calls++
	n.recipients = recipients
	n.reminder = reminder
	return nil
}

type lifecycleFixture struct {
	service     LifecycleService
	assignments *repository.MemoryAssignmentRepository
	submissions *repository.MemorySubmissionRepository
	notifier    *recordingNotifier
}

func courseModules() []models.Module {
	return []models.Module{
		{
			ID:   "m1",
			Name: "Design Fundamentals",
			Topics: []models.Topic{
				{ID: "t1", Name: "Design Principles", ModuleID: "m1"},
				{ID: "t2", Name: "Color Theory", ModuleID: "m1"},
			},
		},
		{
			ID:   "m2",
			Name: "Wireframing",
			Topics: []models.Topic{
				{ID: "t3", Name: "Low-fidelity Wireframes", ModuleID: "m2"},
				{ID: "t4", Name: "High-fidelity Wireframes", ModuleID: "m2"},
			},
		},
	}
}

func newLifecycleFixture(t *testing.T) lifecycleFixture {
	t.Helper()

	assignments := repository.NewMemoryAssignmentRepository()
	submissions := repository.NewMemorySubmissionRepository()
	modules := repository.NewMemoryModuleRepository(courseModules())
	notifier := &recordingNotifier{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewLifecycleService(
		assignments,
		submissions,
		modules,
		roster.Static("Alice Johnson", "Bob Smith", "Carol White"),
		"c1",
		notifier,
		validate,
		zerolog.Nop(),
	)

	return lifecycleFixture{service: svc, assignments: assignments, submissions: submissions, notifier: notifier}
}

func validCreateRequest() dto.AssignmentCreateRequest {
	return dto.AssignmentCreateRequest{
		Title:          "Wireframing Exercise",
		Description:    "Produce low-fidelity wireframes for the checkout flow",
		DueDate:        time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		TotalPoints:    100,
		SubmissionType: models.SubmissionTypeFileUpload,
		AssignTo:       models.AssignToAll,
		ModuleID:       "m2",
		TopicID:        "t3",
	}
}

func TestCreateAssignmentDenormalizesLinkedTopic(t *testing.T) {
	fx := newLifecycleFixture(t)

	created, err := fx.service.CreateAssignment(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.AssignmentStatusOngoing, created.Status)
	require.NotNil(t, created.LinkedTopic)
	require.Equal(t, "t3", created.LinkedTopic.ID)
	require.Equal(t, "Low-fidelity Wireframes", created.LinkedTopic.Name)
	require.Equal(t, "m2", created.LinkedTopic.ModuleID)
	require.Equal(t, 0, created.Submissions.Received)
	require.Equal(t, 3, created.Submissions.Total)
}

func TestCreateAssignmentMissingTitle(t *testing.T) {
	fx := newLifecycleFixture(t)

	payload := validCreateRequest()
	payload.Title = "   "

	_, err := fx.service.CreateAssignment(context.Background(), payload)
	require.True(t, engine.IsValidation(err))
	require.Equal(t, engine.ReasonMissingTitle, engine.Reason(err))

	stored, listErr := fx.assignments.List(context.Background())
	require.NoError(t, listErr)
	require.Empty(t, stored, "failed create must not touch the collection")
}

func TestCreateAssignmentMissingModuleOrTopic(t *testing.T) {
	fx := newLifecycleFixture(t)

	payload := validCreateRequest()
	payload.TopicID = ""

	_, err := fx.service.CreateAssignment(context.Background(), payload)
	require.Equal(t, engine.ReasonMissingModuleOrTopic, engine.Reason(err))
}

func TestCreateAssignmentTopicFromAnotherModule(t *testing.T) {
	fx := newLifecycleFixture(t)

	payload := validCreateRequest()
	payload.ModuleID = "m1"
	payload.TopicID = "t3"

	_, err := fx.service.CreateAssignment(context.Background(), payload)
	require.Equal(t, engine.ReasonInvalidModuleTopicPair, engine.Reason(err))
}

func TestUpdateAssignmentOverwritesAndPreservesIdentity(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	update := dto.AssignmentUpdateRequest{
		Title:          "Wireframing Exercise v2",
		Description:    "Revised brief",
		DueDate:        time.Now().Add(96 * time.Hour).UTC().Format(time.RFC3339),
		TotalPoints:    50,
		SubmissionType: models.SubmissionTypeLink,
		AssignTo:       models.AssignToAll,
		ModuleID:       "m1",
		TopicID:        "t2",
	}

	updated, err := fx.service.UpdateAssignment(ctx, created.ID, update)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Wireframing Exercise v2", updated.Title)
	require.Equal(t, created.Status, updated.Status)
	require.Equal(t, "t2", updated.LinkedTopic.ID)
	require.Equal(t, "m1", updated.LinkedTopic.ModuleID)
}

func TestUpdateAssignmentMissing(t *testing.T) {
	fx := newLifecycleFixture(t)

	update := dto.AssignmentUpdateRequest{
		Title:          "Ghost",
		DueDate:        time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		SubmissionType: models.SubmissionTypeTextInput,
		AssignTo:       models.AssignToAll,
		ModuleID:       "m1",
		TopicID:        "t1",
	}

	_, err := fx.service.UpdateAssignment(context.Background(), "missing", update)
	require.True(t, engine.IsNotFound(err))
}

func TestMarkAssignmentCompletedIsOneWay(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	completed, err := fx.service.MarkAssignmentCompleted(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusCompleted, completed.Status)

	_, err = fx.service.MarkAssignmentCompleted(ctx, created.ID)
	require.True(t, engine.IsInvalidTransition(err))
	require.Equal(t, engine.ReasonAlreadyCompleted, engine.Reason(err))

	// The stored entity must still be completed after the rejected repeat.
	stored, err := fx.service.GetAssignment(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusCompleted, stored.Status)
}

func TestGradeSubmissionLateThenRegrade(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	submittedAt := time.Now().Add(-time.Hour)
	submission := models.Submission{
		ID:           "sub-1",
		StudentName:  "Bob Smith",
		AssignmentID: created.ID,
		Status:       models.SubmissionStatusLate,
		SubmittedAt:  &submittedAt,
	}
	require.NoError(t, fx.submissions.Create(ctx, &submission))

	graded, err := fx.service.GradeSubmission(ctx, "sub-1", dto.GradeSubmissionRequest{Grade: "85/100", Feedback: "Solid layout"})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusGraded, graded.Status)
	require.Equal(t, "85/100", graded.Grade)

	_, err = fx.service.GradeSubmission(ctx, "sub-1", dto.GradeSubmissionRequest{Grade: "90/100"})
	require.True(t, engine.IsInvalidTransition(err))
	require.Equal(t, engine.ReasonAlreadyGraded, engine.Reason(err))
}

func TestGradeSubmissionRejectsNotSubmitted(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	submission := models.Submission{ID: "sub-2", StudentName: "Carol White", AssignmentID: "a1", Status: models.SubmissionStatusNotSubmitted}
	require.NoError(t, fx.submissions.Create(ctx, &submission))

	_, err := fx.service.GradeSubmission(ctx, "sub-2", dto.GradeSubmissionRequest{Grade: "50/100"})
	require.Equal(t, engine.ReasonNotSubmitted, engine.Reason(err))
}

func TestGradeSubmissionMissingGrade(t *testing.T) {
	fx := newLifecycleFixture(t)

	_, err := fx.service.GradeSubmission(context.Background(), "sub-1", dto.GradeSubmissionRequest{Grade: "  "})
	require.Equal(t, engine.ReasonMissingGrade, engine.Reason(err))
}

func TestGradingKeepsCounterInvariant(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	submittedAt := time.Now().Add(-time.Hour)
	fixtures := []models.Submission{
		{ID: "s1", StudentName: "Alice Johnson", AssignmentID: created.ID, Status: models.SubmissionStatusSubmitted, SubmittedAt: &submittedAt},
		{ID: "s2", StudentName: "Bob Smith", AssignmentID: created.ID, Status: models.SubmissionStatusNotSubmitted},
	}
	for i := range fixtures {
		require.NoError(t, fx.submissions.Create(ctx, &fixtures[i]))
	}

	_, err = fx.service.GradeSubmission(ctx, "s1", dto.GradeSubmissionRequest{Grade: "95/100"})
	require.NoError(t, err)

	counters, err := fx.service.AssignmentCounters(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, counters.Received, "graded submissions still count as received")
	require.Equal(t, 3, counters.Total)

	missing, err := fx.service.NonSubmitters(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Bob Smith", "Carol White"}, missing)
}

func TestSendRemindersForwardsNonSubmitters(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	submittedAt := time.Now().Add(-time.Hour)
	submission := models.Submission{ID: "s1", StudentName: "Alice Johnson", AssignmentID: created.ID, Status: models.SubmissionStatusSubmitted, SubmittedAt: &submittedAt}
	require.NoError(t, fx.submissions.Create(ctx, &submission))

	recipients, err := fx.service.SendReminders(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Bob Smith", "Carol White"}, recipients)
	require.Equal(t, 1, fx.notifier.calls)
	require.Equal(t, created.ID, fx.notifier.reminder.AssignmentID)
	require.Equal(t, "Wireframing Exercise", fx.notifier.reminder.AssignmentTitle)
}

func TestSendRemindersEmptyRecipientList(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	submittedAt := time.Now().Add(-time.Hour)
	for i, student := range []string{"Alice Johnson", "Bob Smith", "Carol White"} {
		submission := models.Submission{
			ID:           fmt.Sprintf("s%d", i+1),
			StudentName:  student,
			AssignmentID: created.ID,
			Status:       models.SubmissionStatusSubmitted,
			SubmittedAt:  &submittedAt,
		}
		require.NoError(t, fx.submissions.Create(ctx, &submission))
	}

	_, err = fx.service.SendReminders(ctx, created.ID)
	require.True(t, engine.IsValidation(err))
	require.Equal(t, engine.ReasonEmptyRecipientList, engine.Reason(err))
	require.Equal(t, 0, fx.notifier.calls, "no notification may be dispatched")
}

func TestListAssignmentsFiltersByStatusAndSearch(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	first, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.Title = "User Research Report"
	_, err = fx.service.CreateAssignment(ctx, second)
	require.NoError(t, err)

	_, err = fx.service.MarkAssignmentCompleted(ctx, first.ID)
	require.NoError(t, err)

	ongoing, err := fx.service.ListAssignments(ctx, models.AssignmentStatusOngoing, "")
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	require.Equal(t, "User Research Report", ongoing[0].Title)

	completed, err := fx.service.ListAssignments(ctx, models.AssignmentStatusCompleted, "wirefram")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, first.ID, completed[0].ID)
}

func TestListSubmissionsAppliesConjunctiveFilters(t *testing.T) {
	fx := newLifecycleFixture(t)
	ctx := context.Background()

	submittedAt := time.Now().Add(-time.Hour)
	fixtures := []models.Submission{
		{ID: "s1", StudentName: "Alice Johnson", AssignmentID: "a1", AssignmentName: "Wireframing Exercise", Status: models.SubmissionStatusSubmitted, SubmittedAt: &submittedAt},
		{ID: "s2", StudentName: "Bob Smith", AssignmentID: "a1", AssignmentName: "Wireframing Exercise", Status: models.SubmissionStatusLate, SubmittedAt: &submittedAt},
		{ID: "s3", StudentName: "Dana Aliyeva", AssignmentID: "a1", AssignmentName: "Wireframing Exercise", Status: models.SubmissionStatusNotSubmitted},
	}
	for i := range fixtures {
		require.NoError(t, fx.submissions.Create(ctx, &fixtures[i]))
	}

	results, err := fx.service.ListSubmissions(ctx, dto.SubmissionListQuery{AssignmentID: "a1", Search: "ali", Status: "all"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Alice Johnson", results[0].StudentName)
	require.Equal(t, "Dana Aliyeva", results[1].StudentName)

	results, err = fx.service.ListSubmissions(ctx, dto.SubmissionListQuery{AssignmentID: "a1", Search: "ali", Status: models.SubmissionStatusLate})
	require.NoError(t, err)
	require.Empty(t, results)
}
