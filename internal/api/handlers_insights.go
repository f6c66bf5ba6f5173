package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

// GenerateInsight runs the opinion writer for one log, on demand only.
// ?force=true allows generation on a partial log.
func (handler *Handler) GenerateInsight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseLogID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}
	force := c.QueryBool("force")

	insight, err := handler.insightService.GenerateForLog(user.ID, logID, force, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLogNotFound):
			return apiError(c, fiber.StatusNotFound, "log not found")
		case errors.Is(err, services.ErrLogIncomplete):
			return apiError(c, fiber.StatusUnprocessableEntity, "log is not complete")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to generate insight")
		}
	}
	return c.JSON(insight)
}

func (handler *Handler) GetInsight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseLogID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	insight, err := handler.insightService.FetchForLog(user.ID, logID)
	if err != nil {
		if errors.Is(err, services.ErrInsightNotFound) {
			return apiError(c, fiber.StatusNotFound, "insight not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load insight")
	}
	return c.JSON(insight)
}

func (handler *Handler) ListInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.insightService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load insights")
	}
	return c.JSON(insights)
}
