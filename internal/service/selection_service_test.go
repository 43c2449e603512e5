package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mentora-labs/mentora-api/internal/engine"
	"github.com/mentora-labs/mentora-api/internal/models"
)

func newSelectionFixture(t *testing.T) (SelectionService, lifecycleFixture) {
	t.Helper()
	fx := newLifecycleFixture(t)
	selection := NewSelectionService(fx.assignments, fx.submissions, fx.service, zerolog.Nop())
	return selection, fx
}

func TestSelectAssignmentRequiresExistingEntity(t *testing.T) {
	selection, _ := newSelectionFixture(t)

	err := selection.SelectAssignment(context.Background(), "missing")
	require.True(t, engine.IsNotFound(err))

	_, ok := selection.SelectedAssignment(context.Background())
	require.False(t, ok)
}

func TestSelectionLifecycle(t *testing.T) {
	selection, fx := newSelectionFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, selection.SelectAssignment(ctx, created.ID))
	selected, ok := selection.SelectedAssignment(ctx)
	require.True(t, ok)
	require.Equal(t, created.ID, selected.ID)

	// Switching targets directly, without an intermediate clear.
	second := validCreateRequest()
	second.Title = "User Research Report"
	other, err := fx.service.CreateAssignment(ctx, second)
	require.NoError(t, err)

	require.NoError(t, selection.SelectAssignment(ctx, other.ID))
	selected, ok = selection.SelectedAssignment(ctx)
	require.True(t, ok)
	require.Equal(t, other.ID, selected.ID)

	selection.ClearAssignmentSelection()
	_, ok = selection.SelectedAssignment(ctx)
	require.False(t, ok)
}

func TestSelectedSubmissionResolvesToNoneWhenBackingEntityGone(t *testing.T) {
	selection, fx := newSelectionFixture(t)
	ctx := context.Background()

	submittedAt := time.Now().Add(-time.Hour)
	submission := models.Submission{ID: "s1", StudentName: "Alice Johnson", AssignmentID: "a1", Status: models.SubmissionStatusSubmitted, SubmittedAt: &submittedAt}
	require.NoError(t, fx.submissions.Create(ctx, &submission))

	require.NoError(t, selection.SelectSubmission(ctx, "s1"))
	_, ok := selection.SelectedSubmission(ctx)
	require.True(t, ok)

	// Selecting an id that never existed fails without disturbing the slot.
	err := selection.SelectSubmission(ctx, "ghost")
	require.True(t, engine.IsNotFound(err))
	selected, ok := selection.SelectedSubmission(ctx)
	require.True(t, ok)
	require.Equal(t, "s1", selected.ID)
}

func TestProjectionsFollowViewInputs(t *testing.T) {
	selection, fx := newSelectionFixture(t)
	ctx := context.Background()

	first, err := fx.service.CreateAssignment(ctx, validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.Title = "User Research Report"
	_, err = fx.service.CreateAssignment(ctx, second)
	require.NoError(t, err)

	_, err = fx.service.MarkAssignmentCompleted(ctx, first.ID)
	require.NoError(t, err)

	ongoing, err := selection.OngoingAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	require.Equal(t, "User Research Report", ongoing[0].Title)

	completed, err := selection.CompletedAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)

	selection.SetSearchTerm("research")
	ongoing, err = selection.OngoingAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)

	completed, err = selection.CompletedAssignments(ctx)
	require.NoError(t, err)
	require.Empty(t, completed)
}

func TestFilteredSubmissionsUseSearchAndStatus(t *testing.T) {
	selection, fx := newSelectionFixture(t)
	ctx := context.Background()

	submittedAt := time.Now().Add(-time.Hour)
	fixtures := []models.Submission{
		{ID: "s1", StudentName: "Alice Johnson", AssignmentID: "a1", Status: models.SubmissionStatusSubmitted, SubmittedAt: &submittedAt},
		{ID: "s2", StudentName: "Bob Smith", AssignmentID: "a1", Status: models.SubmissionStatusLate, SubmittedAt: &submittedAt},
	}
	for i := range fixtures {
		require.NoError(t, fx.submissions.Create(ctx, &fixtures[i]))
	}

	selection.SetStatusFilter(models.SubmissionStatusLate)
	results, err := selection.FilteredSubmissions(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Bob Smith", results[0].StudentName)

	state := selection.ViewState()
	require.Equal(t, models.SubmissionStatusLate, state.StatusFilter)
}
