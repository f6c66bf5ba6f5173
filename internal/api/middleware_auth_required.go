package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

// AuthRequired authenticates the request and threads the identity plus
// the user's resolved timezone into the handler chain. No operation
// below this point runs without both.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	c.Locals(contextLocationKey, services.LocationOrDefault(user.Timezone))
	return c.Next()
}
