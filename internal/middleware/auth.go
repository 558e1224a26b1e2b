package middleware

import (
	"errors"
	"log/slog"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/notablehq/notable-backend/internal/config"
	"github.com/notablehq/notable-backend/internal/dto"
	"github.com/notablehq/notable-backend/internal/models"
	"github.com/notablehq/notable-backend/internal/services"
)

const currentUserKey = "currentUser"

// JWTProtected rejects requests without a well-signed, unexpired bearer
// token. Clients always see the same 403 regardless of why the token
// was rejected; the distinction is kept for logs only.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwt.ErrTokenExpired) {
				slog.Info("rejected expired token", "path", c.Path())
			} else {
				slog.Info("rejected malformed or unsigned token", "path", c.Path())
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Could not validate credentials",
			})
		},
	})
}

// RequireUser resolves the token subject to a user record and stores it
// in locals. Must run after JWTProtected.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Could not validate credentials",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Could not validate credentials",
			})
		}
		sub, _ := claims["sub"].(string)

		user, err := auth.ResolveSubject(sub)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "User not found",
				})
			case errors.Is(err, services.ErrUserInactive):
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: true, Message: "Inactive user",
				})
			default:
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Could not validate credentials",
				})
			}
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}
