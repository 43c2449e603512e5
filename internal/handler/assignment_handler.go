package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/dto"
	"github.com/mentora-labs/mentora-api/internal/service"
	"github.com/mentora-labs/mentora-api/internal/utils"
)

// AssignmentHandler wires assignment lifecycle HTTP routes.
type AssignmentHandler struct {
	service service.LifecycleService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.LifecycleService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Post("/:id/complete", h.complete)
	router.Get("/:id/counters", h.counters)
	router.Get("/:id/non-submitters", h.nonSubmitters)
	router.Post("/:id/reminders", h.reminders)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	status := c.Query("status")
	search := c.Query("search")

	assignments, err := h.service.ListAssignments(c.UserContext(), status, search)
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	assignment, err := h.service.GetAssignment(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	assignment, err := h.service.CreateAssignment(c.UserContext(), payload)
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendCreated(c, "assignment created", assignment)
}

func (h *AssignmentHandler) update(c *fiber.Ctx) error {
	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	assignment, err := h.service.UpdateAssignment(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *AssignmentHandler) complete(c *fiber.Ctx) error {
	assignment, err := h.service.MarkAssignmentCompleted(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment completed", assignment)
}

func (h *AssignmentHandler) counters(c *fiber.Ctx) error {
	counters, err := h.service.AssignmentCounters(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "counters retrieved", dto.SubmissionCounters{
		Received: counters.Received,
		Total:    counters.Total,
	})
}

func (h *AssignmentHandler) nonSubmitters(c *fiber.Ctx) error {
	names, err := h.service.NonSubmitters(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "non submitters retrieved", fiber.Map{"students": names})
}

func (h *AssignmentHandler) reminders(c *fiber.Ctx) error {
	recipients, err := h.service.SendReminders(c.UserContext(), c.Params("id"))
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "reminders dispatched", fiber.Map{"recipients": recipients})
}
