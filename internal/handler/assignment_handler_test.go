package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mentora-labs/mentora-api/internal/config"
	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/handler"
	"github.com/mentora-labs/mentora-api/internal/models"
	"github.com/mentora-labs/mentora-api/internal/notify"
	"github.com/mentora-labs/mentora-api/internal/repository"
	"github.com/mentora-labs/mentora-api/internal/roster"
	"github.com/mentora-labs/mentora-api/internal/router"
	"github.com/mentora-labs/mentora-api/internal/service"
)

func setupLifecycleApp(t *testing.T) *fiber.App {
	t.Helper()

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	modules := []models.Module{
		{
			ID:   "m1",
			Name: "UX Fundamentals",
			Topics: []models.Topic{
				{ID: "t1", Name: "User Research", ModuleID: "m1"},
				{ID: "t2", Name: "Low-fidelity Wireframes", ModuleID: "m1"},
			},
		},
	}

	assignmentRepo := repository.NewMemoryAssignmentRepository()
	submissionRepo := repository.NewMemorySubmissionRepository()
	moduleRepo := repository.NewMemoryModuleRepository(modules)

	lifecycle := service.NewLifecycleService(
		assignmentRepo,
		submissionRepo,
		moduleRepo,
		roster.Static("Alice Johnson", "Bob Smith"),
		"c1",
		notify.NewNopNotifier(logger),
		validate,
		logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		AssignmentHandler: handler.NewAssignmentHandler(lifecycle, logger),
		SubmissionHandler: handler.NewSubmissionHandler(lifecycle, logger),
		ModuleHandler:     handler.NewModuleHandler(lifecycle, logger),
	})

	return app
}

func createPayload() dto.AssignmentCreateRequest {
	return dto.AssignmentCreateRequest{
		Title:          "Wireframing Exercise",
		Description:    "Sketch the signup flow",
		DueDate:        time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		TotalPoints:    100,
		SubmissionType: models.SubmissionTypeFileUpload,
		AssignTo:       models.AssignToAll,
		ModuleID:       "m1",
		TopicID:        "t2",
	}
}

type assignmentEnvelope struct {
	Success bool                   `json:"success"`
	Data    dto.AssignmentResponse `json:"data"`
	Message string                 `json:"message"`
	Reason  string                 `json:"reason"`
}

func TestAssignmentCreateAndComplete(t *testing.T) {
	app := setupLifecycleApp(t)

	body, err := json.Marshal(createPayload())
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/classroom/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created assignmentEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.True(t, created.Success)
	require.NotEmpty(t, created.Data.ID)
	require.Equal(t, models.AssignmentStatusOngoing, created.Data.Status)
	require.NotNil(t, created.Data.LinkedTopic)
	require.Equal(t, "Low-fidelity Wireframes", created.Data.LinkedTopic.Name)
	require.Equal(t, 2, created.Data.Submissions.Total)

	completeReq := httptest.NewRequest("POST", "/api/v1/classroom/assignments/"+created.Data.ID+"/complete", nil)
	completeResp, err := app.Test(completeReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, completeResp.StatusCode)

	var completed assignmentEnvelope
	require.NoError(t, json.NewDecoder(completeResp.Body).Decode(&completed))
	require.Equal(t, models.AssignmentStatusCompleted, completed.Data.Status)

	// Completing twice is an invalid transition and must surface as a conflict.
	repeatReq := httptest.NewRequest("POST", "/api/v1/classroom/assignments/"+created.Data.ID+"/complete", nil)
	repeatResp, err := app.Test(repeatReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, repeatResp.StatusCode)

	var repeat assignmentEnvelope
	require.NoError(t, json.NewDecoder(repeatResp.Body).Decode(&repeat))
	require.False(t, repeat.Success)
	require.Equal(t, "already_completed", repeat.Reason)
}

func TestAssignmentCreateMissingTitleReturnsReason(t *testing.T) {
	app := setupLifecycleApp(t)

	payload := createPayload()
	payload.Title = "   "
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/classroom/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope assignmentEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.False(t, envelope.Success)
	require.Equal(t, "missing_title", envelope.Reason)
}

func TestAssignmentGetMissingReturnsNotFound(t *testing.T) {
	app := setupLifecycleApp(t)

	req := httptest.NewRequest("GET", "/api/v1/classroom/assignments/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
