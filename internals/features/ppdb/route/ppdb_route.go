package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/controller"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// PPDBRoutes: route statis didaftarkan sebelum /:id.
func PPDBRoutes(api fiber.Router, ctl *controller.PPDBController, requireSession fiber.Handler) {
	r := api.Group("/ppdb")

	// publik
	r.Post("/", middlewares.RegisterRateLimiter(), ctl.Submit)
	r.Get("/by-nisn", ctl.ByNISN)
	r.Get("/pdf", ctl.ReceiptPDF)
	r.Post("/payment/notification", ctl.PaymentNotification)
	r.Post("/:id/payment", ctl.CreatePayment)

	// admin
	read := authMiddleware.RequireCapability(constants.CapPPDBRead)
	r.Get("/", requireSession, read, ctl.List)
	r.Get("/export", requireSession, authMiddleware.RequireCapability(constants.CapPPDBExport), ctl.Export)
	r.Get("/:id", requireSession, read, ctl.Get)
	r.Put("/:id", requireSession, authMiddleware.RequireCapability(constants.CapPPDBUpdateStatus), ctl.UpdateStatus)

	push := api.Group("/push")
	push.Post("/subscribe", ctl.Subscribe)
	push.Get("/vapid-public-key", ctl.VAPIDKey)
}
