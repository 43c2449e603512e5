package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/service"
	"github.com/mentora-labs/mentora-api/internal/utils"
)

// ModuleHandler serves the course module catalog used when linking
// assignments to topics.
type ModuleHandler struct {
	service service.LifecycleService
	logger  zerolog.Logger
}

// NewModuleHandler constructs the handler.
func NewModuleHandler(service service.LifecycleService, logger zerolog.Logger) *ModuleHandler {
	return &ModuleHandler{
		service: service,
		logger:  logger.With().Str("component", "module_handler").Logger(),
	}
}

// Register attaches module endpoints to the router group.
func (h *ModuleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ModuleHandler) list(c *fiber.Ctx) error {
	modules, err := h.service.ListModules(c.UserContext())
	if err != nil {
		return sendEngineError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "modules retrieved", modules)
}
