package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentora-labs/mentora-api/internal/engine"
	"github.com/mentora-labs/mentora-api/internal/middleware"
	"github.com/mentora-labs/mentora-api/internal/utils"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendEngineError maps the engine's error taxonomy onto HTTP statuses.
// Validation failures and invalid transitions carry their reason code so
// clients can react without parsing messages.
func sendEngineError(c *fiber.Ctx, logger *zerolog.Logger, err error) error {
	var notFound *engine.NotFoundError
	switch {
	case engine.IsValidation(err):
		return utils.SendErrorWithReason(c, fiber.StatusBadRequest, err.Error(), engine.Reason(err))
	case errors.As(err, &notFound):
		return utils.SendError(c, fiber.StatusNotFound, notFound.Error())
	case engine.IsInvalidTransition(err):
		return utils.SendErrorWithReason(c, fiber.StatusConflict, err.Error(), engine.Reason(err))
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
