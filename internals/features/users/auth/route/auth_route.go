package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/users/auth/controller"
	rateLimiter "sekolahku_backend/internals/middlewares"
)

// AuthRoutes: /api/auth
func AuthRoutes(api fiber.Router, ctl *controller.AuthController, requireSession fiber.Handler) {
	r := api.Group("/auth")

	r.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	r.Post("/login-google", rateLimiter.LoginRateLimiter(), ctl.LoginGoogle)

	r.Post("/logout", requireSession, ctl.Logout)
	r.Get("/me", requireSession, ctl.Me)
}
