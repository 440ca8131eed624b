package details

import (
	"github.com/gofiber/fiber/v2"

	ppdbController "sekolahku_backend/internals/features/ppdb/controller"
	ppdbRoute "sekolahku_backend/internals/features/ppdb/route"
	ppdbService "sekolahku_backend/internals/features/ppdb/service"
)

func PPDBRoutes(api fiber.Router, svc *ppdbService.Service, vapidPublic string, requireSession fiber.Handler) {
	ctl := ppdbController.NewPPDBController(svc, vapidPublic)
	ppdbRoute.PPDBRoutes(api, ctl, requireSession)
}
