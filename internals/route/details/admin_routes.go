package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	storageRoute "sekolahku_backend/internals/features/storage/route"
	uploadRoute "sekolahku_backend/internals/features/uploads/route"
	uploadService "sekolahku_backend/internals/features/uploads/service"
	userController "sekolahku_backend/internals/features/users/users/controller"
	userRoute "sekolahku_backend/internals/features/users/users/route"
	userService "sekolahku_backend/internals/features/users/users/service"
	"sekolahku_backend/internals/helpers/storage"
)

// AdminRoutes: admin sudah melewati RequireSession; tiap route cek capability sendiri.
func AdminRoutes(admin fiber.Router, uploads *uploadService.Service, users *userService.Service, sb *storage.SupabaseStorage) {
	uploadRoute.UploadRoutes(admin, uploads)
	userRoute.UserRoutes(admin, userController.NewUserController(users))

	if sb == nil {
		zap.L().Warn("storage browser tidak dipasang: Supabase belum dikonfigurasi")
		return
	}
	storageRoute.StorageRoutes(admin, sb)
}
