package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/service"
	"github.com/mentora-labs/mentora-api/internal/utils"
)

// DashboardHandler serves the aggregated tutor dashboard.
type DashboardHandler struct {
	service            service.TutorDashboardService
	defaultClassroomID string
	logger             zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.TutorDashboardService, defaultClassroomID string, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:            service,
		defaultClassroomID: defaultClassroomID,
		logger:             logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *DashboardHandler) get(c *fiber.Ctx) error {
	classroomID := strings.TrimSpace(c.Query("classroom_id"))
	if classroomID == "" {
		classroomID = h.defaultClassroomID
	}

	dashboard, err := h.service.GetDashboard(c.UserContext(), classroomID)
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
