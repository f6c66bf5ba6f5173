package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

func (handler *Handler) UpdateTimezone(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := timezoneInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.settingsService.UpdateTimezone(user.ID, input.Timezone); err != nil {
		if errors.Is(err, services.ErrInvalidTimezone) {
			return apiError(c, fiber.StatusBadRequest, "unknown timezone")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update timezone")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) UpdateDisplayName(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := displayNameInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.settingsService.UpdateDisplayName(user.ID, input.DisplayName); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(fiber.Map{"ok": true})
}
