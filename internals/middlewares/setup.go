package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan: recover paling luar.
func SetupMiddlewares(app *fiber.App, c *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(10 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(Metrics())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(CorsMiddleware(c.CorsOrigins))
	app.Use(GlobalRateLimiter())
}
