package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/models"
	"github.com/nwestbury/pulselog/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// currentLocation returns the requester's resolved timezone, set by
// AuthRequired from the user's stored preference.
func currentLocation(c *fiber.Ctx) *time.Location {
	if location, ok := c.Locals(contextLocationKey).(*time.Location); ok && location != nil {
		return location
	}
	return services.LocationOrDefault("")
}
