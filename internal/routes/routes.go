package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/notablehq/notable-backend/internal/config"
	"github.com/notablehq/notable-backend/internal/handlers"
	"github.com/notablehq/notable-backend/internal/middleware"
	"github.com/notablehq/notable-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	noteHandler *handlers.NoteHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Login-specific rate limit: 10 req/min per IP (stricter)
	login := api.Group("/login")
	login.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public routes, registered before the JWT gate below
	api.Get("/health", healthHandler.Check)
	login.Post("/access-token", authHandler.LoginAccessToken)
	api.Post("/users/signup", userHandler.Signup)

	// Everything past this point requires a bearer token resolving to
	// an existing, active user.
	api.Use(middleware.JWTProtected(cfg), middleware.RequireUser(authService))

	api.Post("/login/test-token", authHandler.TestToken)

	users := api.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Patch("/me", userHandler.UpdateMe)
	users.Delete("/me", userHandler.DeleteMe)
	users.Post("/me/password", userHandler.UpdatePassword)

	// Superuser-gated account administration
	admin := middleware.SuperuserRequired()
	users.Get("/", admin, userHandler.ListUsers)
	users.Get("/find/:email", admin, userHandler.FindByEmail)
	users.Get("/:id", admin, userHandler.GetUser)
	users.Patch("/:id", admin, userHandler.AdminUpdateUser)
	users.Delete("/:id", admin, userHandler.AdminDeleteUser)

	notes := api.Group("/notes")
	notes.Get("/", noteHandler.List)
	notes.Post("/", noteHandler.Create)
	notes.Get("/:id", noteHandler.Get)
	notes.Delete("/:id", noteHandler.Delete)
}
