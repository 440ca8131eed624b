package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/users/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// UserRoutes: /api/admin/users, khusus superadmin (users.manage).
func UserRoutes(admin fiber.Router, ctl *controller.UserController) {
	r := admin.Group("/users", authMiddleware.RequireCapability(constants.CapUsersManage))
	r.Get("/", ctl.List)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
