package server

import (
	"microblog/internal/middleware"
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// APIKeyRequired resolves the api-key header to a user and stores its id in
// locals and the request context. Unknown keys are rejected with 400.
func (s *Server) APIKeyRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.userService.Authenticate(c.UserContext(), c.Get(APIKeyHeader))
		if err != nil {
			return models.RespondWithAppError(c, err)
		}

		middleware.WithUserID(c, user.ID)
		return c.Next()
	}
}

// DebugRequired hides a route with 403 unless DEBUG is enabled.
func (s *Server) DebugRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.config.Debug {
			return models.RespondWithAppError(c, models.NewDebugOnlyError())
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
