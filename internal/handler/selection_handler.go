package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/service"
	"github.com/mentora-labs/mentora-api/internal/utils"
)

// SelectionHandler exposes the tutor view coordinator: the selected
// assignment/submission slots and the shared search and status filter inputs.
type SelectionHandler struct {
	service   service.SelectionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSelectionHandler constructs the handler.
func NewSelectionHandler(service service.SelectionService, validate *validator.Validate, logger zerolog.Logger) *SelectionHandler {
	return &SelectionHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "selection_handler").Logger(),
	}
}

// Register attaches view coordinator endpoints to the router group.
func (h *SelectionHandler) Register(router fiber.Router) {
	router.Get("/state", h.state)
	router.Put("/state", h.setState)

	router.Put("/assignment", h.selectAssignment)
	router.Delete("/assignment", h.clearAssignment)
	router.Get("/assignment", h.selectedAssignment)

	router.Put("/submission", h.selectSubmission)
	router.Delete("/submission", h.clearSubmission)
	router.Get("/submission", h.selectedSubmission)

	router.Get("/assignments/ongoing", h.ongoing)
	router.Get("/assignments/completed", h.completed)
	router.Get("/assignments/:id/submissions", h.filteredSubmissions)
}

func (h *SelectionHandler) state(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "view state retrieved", h.service.ViewState())
}

func (h *SelectionHandler) setState(c *fiber.Ctx) error {
	var payload dto.ViewStateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	h.service.SetSearchTerm(payload.SearchTerm)
	if payload.StatusFilter != "" {
		h.service.SetStatusFilter(payload.StatusFilter)
	}

	return utils.SendSuccess(c, "view state updated", h.service.ViewState())
}

func (h *SelectionHandler) selectAssignment(c *fiber.Ctx) error {
	var payload dto.SelectionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.SelectAssignment(c.UserContext(), payload.ID); err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment selected", h.service.ViewState())
}

func (h *SelectionHandler) clearAssignment(c *fiber.Ctx) error {
	h.service.ClearAssignmentSelection()
	return utils.SendSuccess(c, "assignment selection cleared", h.service.ViewState())
}

func (h *SelectionHandler) selectedAssignment(c *fiber.Ctx) error {
	assignment, ok := h.service.SelectedAssignment(c.UserContext())
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "no assignment selected")
	}

	return utils.SendSuccess(c, "selected assignment retrieved", assignment)
}

func (h *SelectionHandler) selectSubmission(c *fiber.Ctx) error {
	var payload dto.SelectionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.SelectSubmission(c.UserContext(), payload.ID); err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "submission selected", h.service.ViewState())
}

func (h *SelectionHandler) clearSubmission(c *fiber.Ctx) error {
	h.service.ClearSubmissionSelection()
	return utils.SendSuccess(c, "submission selection cleared", h.service.ViewState())
}

func (h *SelectionHandler) selectedSubmission(c *fiber.Ctx) error {
	submission, ok := h.service.SelectedSubmission(c.UserContext())
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "no submission selected")
	}

	return utils.SendSuccess(c, "selected submission retrieved", submission)
}

func (h *SelectionHandler) ongoing(c *fiber.Ctx) error {
	assignments, err := h.service.OngoingAssignments(c.UserContext())
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "ongoing assignments retrieved", assignments)
}

func (h *SelectionHandler) completed(c *fiber.Ctx) error {
	assignments, err := h.service.CompletedAssignments(c.UserContext())
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "completed assignments retrieved", assignments)
}

func (h *SelectionHandler) filteredSubmissions(c *fiber.Ctx) error {
	submissions, err := h.service.FilteredSubmissions(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}
