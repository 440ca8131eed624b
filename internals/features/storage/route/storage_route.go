package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/storage/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func StorageRoutes(admin fiber.Router, files controller.Pruner) {
	ctl := controller.NewStorageController(files)
	r := admin.Group("/storage/supabase", authMiddleware.RequireCapability(constants.CapStorageBrowse))
	r.Get("/", ctl.List)
	r.Delete("/", ctl.Delete)
}
