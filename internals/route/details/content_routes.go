package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	achievementRoute "sekolahku_backend/internals/features/content/achievements/route"
	downloadRoute "sekolahku_backend/internals/features/content/downloads/route"
	galleryRoute "sekolahku_backend/internals/features/content/galleries/route"
	newsRoute "sekolahku_backend/internals/features/content/news/route"
	publicationRoute "sekolahku_backend/internals/features/content/publications/route"
	"sekolahku_backend/internals/features/content/shared"
	mediaService "sekolahku_backend/internals/features/media/service"
	"sekolahku_backend/internals/helpers/storage"
)

func ContentRoutes(api fiber.Router, db *gorm.DB, media *mediaService.Service, sb *storage.SupabaseStorage, g shared.Guards) {
	newsRoute.NewsRoutes(api, db, media, g)
	achievementRoute.AchievementRoutes(api, db, media, g)
	galleryRoute.GalleryRoutes(api, db, media, g)
	publicationRoute.PublicationRoutes(api, db, media, g)

	var files storage.Browser
	if sb != nil {
		files = sb
	}
	downloadRoute.DownloadRoutes(api, db, media, files, g)
}
