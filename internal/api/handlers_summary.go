package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetWeeklySummary rolls up the seven civil days ending on the anchor
// date (defaults to today in the requester's timezone).
func (handler *Handler) GetWeeklySummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	location := currentLocation(c)

	anchor := time.Now()
	if raw := strings.TrimSpace(c.Query("anchor")); raw != "" {
		parsed, err := parseDayParam(raw, location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid anchor date")
		}
		anchor = parsed
	}

	summary, err := handler.summaryService.BuildWeeklySummary(user.ID, anchor, location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build summary")
	}
	return c.JSON(summary)
}
