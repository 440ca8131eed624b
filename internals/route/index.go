// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sekolahku_backend/internals/features/content/shared"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, d *Deps) {
	startTime = time.Now()

	BaseRoutes(app, d.DB)

	sessionOpts := authMiddleware.Options{
		Secret:     d.Cfg.Auth.JWTSecret,
		CookieName: d.Cfg.Auth.CookieName,
		Blacklist:  d.Blacklist,
	}
	guards := shared.Guards{
		Optional: authMiddleware.OptionalSession(sessionOpts),
		Require:  authMiddleware.RequireSession(sessionOpts),
	}

	api := app.Group("/api")

	// ===================== AUTH =====================
	zap.L().Info("[ROUTE] auth")
	routeDetails.AuthRoutes(api, d.Auth, d.Cfg.Auth, guards.Require)

	// ===================== KONTEN (baca publik, tulis admin) =====================
	zap.L().Info("[ROUTE] content")
	routeDetails.ContentRoutes(api, d.DB, d.Media, d.Supabase, guards)

	// ===================== PPDB =====================
	zap.L().Info("[ROUTE] ppdb")
	routeDetails.PPDBRoutes(api, d.PPDB, d.Cfg.Push.VAPIDPublicKey, guards.Require)

	// ===================== ADMIN =====================
	zap.L().Info("[ROUTE] admin")
	admin := api.Group("/admin", guards.Require)
	routeDetails.AdminRoutes(admin, d.Uploads, d.Users, d.Supabase)
}
