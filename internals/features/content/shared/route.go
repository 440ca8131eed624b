package shared

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// Guards: middleware sesi yang dibagikan route konten.
type Guards struct {
	Optional fiber.Handler
	Require  fiber.Handler
}

// Mount memasang lima route CRUD: baca publik, tulis butuh content.manage.
func Mount[M any, P Row[M]](api fiber.Router, path string, ctl *Controller[M, P], g Guards) fiber.Router {
	r := api.Group(path)
	manage := authMiddleware.RequireCapability(constants.CapContentManage)

	r.Get("/", g.Optional, ctl.List)
	r.Get("/:id", g.Optional, ctl.Get)
	r.Post("/", g.Require, manage, ctl.Create)
	r.Put("/:id", g.Require, manage, ctl.Update)
	r.Delete("/:id", g.Require, manage, ctl.Delete)
	return r
}
