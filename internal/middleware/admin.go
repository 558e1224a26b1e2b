package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notablehq/notable-backend/internal/dto"
)

// SuperuserRequired gates admin routes on the is_superuser flag. Must
// run after RequireUser.
func SuperuserRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Could not validate credentials",
			})
		}
		if !user.IsSuperuser {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "The user doesn't have enough privileges",
			})
		}
		return c.Next()
	}
}
