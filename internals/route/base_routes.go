package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	"sekolahku_backend/internals/helpers/dbtime"
	"sekolahku_backend/internals/middlewares"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(configs.C().AppName + " API")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}
		var dbTime *time.Time
		if httpStatus == fiber.StatusOK {
			if t, err := dbtime.GetDBTime(c.UserContext(), db); err == nil {
				dbTime = &t
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    dbtime.NowInSchool().Format(time.RFC3339),
			"db_time":        dbTime,
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.C().Env,
		})
	})

	app.Get("/metrics", middlewares.MetricsHandler())
}
