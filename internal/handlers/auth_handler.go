package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/notablehq/notable-backend/internal/dto"
	"github.com/notablehq/notable-backend/internal/middleware"
	"github.com/notablehq/notable-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginAccessToken implements the OAuth2 password grant: form-encoded
// username (the email) and password in, bearer token out. Bad
// credentials and unknown emails produce the same response.
func (h *AuthHandler) LoginAccessToken(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserInactive) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Inactive user",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Incorrect email or password",
		})
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// TestToken echoes back the authenticated user; useful for clients to
// check whether a stored token is still good.
func (h *AuthHandler) TestToken(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not validate credentials",
		})
	}
	return c.JSON(dto.NewUserResponse(user))
}
