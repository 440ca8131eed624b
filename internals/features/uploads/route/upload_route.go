package route

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/uploads/controller"
	"sekolahku_backend/internals/features/uploads/service"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func UploadRoutes(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewUploadController(svc)
	admin.Post("/upload",
		authMiddleware.RequireCapability(constants.CapMediaUpload),
		middlewares.ExtendTimeout(60*time.Second),
		ctl.Upload,
	)
}
