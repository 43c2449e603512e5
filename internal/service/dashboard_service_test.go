package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/repository"
	"github.com/mentora-labs/mentora-api/internal/roster"
)

func TestTutorDashboardAggregatesProgress(t *testing.T) {
	assignments := repository.NewMemoryAssignmentRepository()
	submissions := repository.NewMemorySubmissionRepository()
	ctx := context.Background()

	assignment := models.Assignment{ID: "a1", Title: "Wireframing Exercise", Status: models.AssignmentStatusOngoing, AssignTo: models.AssignToAll}
	require.NoError(t, assignments.Create(ctx, &assignment))
	completed := models.Assignment{ID: "a2", Title: "User Research", Status: models.AssignmentStatusCompleted, AssignTo: models.AssignToAll}
	require.NoError(t, assignments.Create(ctx, &completed))

	submittedAt := time.Now().Add(-time.Hour)
	fixtures := []models.Submission{
		{ID: "s1", StudentName: "Alice Johnson", AssignmentID: "a1", Status: models.SubmissionStatusGraded, Grade: "90/100", SubmittedAt: &submittedAt},
		{ID: "s2", StudentName: "Bob Smith", AssignmentID: "a1", Status: models.SubmissionStatusLate, SubmittedAt: &submittedAt},
		{ID: "s3", StudentName: "Carol White", AssignmentID: "a1", Status: models.SubmissionStatusNotSubmitted},
	}
	for i := range fixtures {
		require.NoError(t, submissions.Create(ctx, &fixtures[i]))
	}

	svc := NewTutorDashboardService(assignments, submissions, roster.Static("Alice Johnson", "Bob Smith", "Carol White"), nil, time.Minute, zerolog.Nop())

	dashboard, err := svc.GetDashboard(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 1, dashboard.Ongoing)
	require.Equal(t, 1, dashboard.Completed)
	require.Len(t, dashboard.Assignments, 2)

	progress := dashboard.Assignments[0]
	require.Equal(t, "a1", progress.AssignmentID)
	require.Equal(t, 2, progress.Received)
	require.Equal(t, 3, progress.Total)
	require.Equal(t, 1, progress.Graded)
	require.Equal(t, 1, progress.Late)
	require.Equal(t, 1, progress.NotSubmitted)
	require.InDelta(t, 2.0/3.0, progress.CompletionRatio, 1e-9)
}

func TestTutorDashboardServesCachedResponse(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	assignments := repository.NewMemoryAssignmentRepository()
	submissions := repository.NewMemorySubmissionRepository()
	ctx := context.Background()

	assignment := models.Assignment{ID: "a1", Title: "Wireframing Exercise", Status: models.AssignmentStatusOngoing, AssignTo: models.AssignToAll}
	require.NoError(t, assignments.Create(ctx, &assignment))

	svc := NewTutorDashboardService(assignments, submissions, roster.Static("Alice Johnson"), client, time.Minute, zerolog.Nop())

	first, err := svc.GetDashboard(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 1, first.Ongoing)

	// A new assignment is invisible until the TTL lapses.
	second := models.Assignment{ID: "a2", Title: "User Research", Status: models.AssignmentStatusOngoing, AssignTo: models.AssignToAll}
	require.NoError(t, assignments.Create(ctx, &second))

	cached, err := svc.GetDashboard(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 1, cached.Ongoing)

	mr.FastForward(2 * time.Minute)

	fresh, err := svc.GetDashboard(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 2, fresh.Ongoing)
}
