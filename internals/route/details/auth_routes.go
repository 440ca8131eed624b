package details

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/configs"
	authController "sekolahku_backend/internals/features/users/auth/controller"
	authRoute "sekolahku_backend/internals/features/users/auth/route"
	authService "sekolahku_backend/internals/features/users/auth/service"
)

func AuthRoutes(api fiber.Router, svc *authService.Service, c configs.AuthConfig, requireSession fiber.Handler) {
	ctl := authController.NewAuthController(svc, c.CookieName, c.CookieSecure)
	authRoute.AuthRoutes(api, ctl, requireSession)
}
