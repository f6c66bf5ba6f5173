package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

// UpdateSection merges one section's partial payload into an existing
// log. Re-submitting a section overwrites its fields and leaves every
// other section untouched.
func (handler *Handler) UpdateSection(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseLogID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	section, err := services.ParseSection(c.Params("section"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "unknown section")
	}

	payload, err := parseSectionPayload(c, section)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.logService.ApplySection(user.ID, logID, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLogNotFound):
			return apiError(c, fiber.StatusNotFound, "log not found")
		case errors.Is(err, services.ErrSaveConflict):
			return apiError(c, fiber.StatusConflict, "concurrent update, retry")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update section")
		}
	}
	return c.JSON(entry)
}

// UpdateAggregates edits the day-level free-form fields independently
// of any section.
func (handler *Handler) UpdateAggregates(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseLogID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	input := aggregatesInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload, err := input.toPayload()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.logService.UpdateAggregates(user.ID, logID, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLogNotFound):
			return apiError(c, fiber.StatusNotFound, "log not found")
		case errors.Is(err, services.ErrSaveConflict):
			return apiError(c, fiber.StatusConflict, "concurrent update, retry")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update log")
		}
	}
	return c.JSON(entry)
}
