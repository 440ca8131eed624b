package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"sekolahku_backend/internals/helpers/dbtime"
)

// LoggerMiddleware: access log satu baris per request, diteruskan ke zap (level info).
// /health dan /metrics dilewati supaya probe tidak membanjiri log.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   dbtime.Location().String(),
		Format:     "[${time}] ${locals:reqid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		Output:     zap.NewStdLog(zap.L().Named("http")).Writer(),
	})
}
