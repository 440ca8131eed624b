package route

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/content/galleries/dto"
	"sekolahku_backend/internals/features/content/galleries/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

func Resource() shared.Resource[model.GalleryModel] {
	return shared.Resource[model.GalleryModel]{
		Name:       "Galeri",
		Table:      "galleries",
		EntityType: constants.EntityGallery,
		SearchCols: []string{"title", "location"},
		SortCols: map[string]string{
			"eventDate":   "event_date",
			"publishedAt": "published_at",
			"createdAt":   "created_at",
			"title":       "title",
		},
		DefaultSort: "eventDate",
		Filter: func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
			if y := strings.TrimSpace(c.Query("year")); y != "" {
				q = q.Where("EXTRACT(YEAR FROM event_date)::text = ?", y)
			}
			return q
		},
		DecodeCreate: func(c *fiber.Ctx) (shared.Payload[model.GalleryModel], error) {
			var req dto.CreateGalleryRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.GalleryModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.GalleryModel]{}, err
			}
			return shared.CreatePayload(req.ToModel(), req.BaseInput), nil
		},
		DecodeUpdate: func(c *fiber.Ctx) (shared.Payload[model.GalleryModel], error) {
			var req dto.UpdateGalleryRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.GalleryModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.GalleryModel]{}, err
			}
			return shared.UpdatePayload[model.GalleryModel](req.Updates(), req.BasePatch), nil
		},
		View: func(m *model.GalleryModel, media []mediaModel.MediaItemModel, detail bool) any {
			return dto.ToGalleryDTO(m, media, detail)
		},
	}
}

func GalleryRoutes(api fiber.Router, db *gorm.DB, media *mediaService.Service, g shared.Guards) {
	ctl := shared.NewController[model.GalleryModel, *model.GalleryModel](db, media, Resource())
	shared.Mount(api, "/galleries", ctl, g)
}
