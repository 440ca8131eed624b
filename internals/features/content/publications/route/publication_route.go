package route

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/content/publications/dto"
	"sekolahku_backend/internals/features/content/publications/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

func Resource() shared.Resource[model.PublicationModel] {
	return shared.Resource[model.PublicationModel]{
		Name:       "Publikasi",
		Table:      "publications",
		EntityType: constants.EntityPublication,
		SearchCols: []string{"title", "author_name", "abstract"},
		SortCols: map[string]string{
			"publishedAt": "published_at",
			"createdAt":   "created_at",
			"title":       "title",
		},
		DefaultSort: "publishedAt",
		Filter: func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
			if t := strings.TrimSpace(c.Query("type")); t != "" {
				q = q.Where("publication_type = ?", t)
			}
			return q
		},
		DecodeCreate: func(c *fiber.Ctx) (shared.Payload[model.PublicationModel], error) {
			var req dto.CreatePublicationRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.PublicationModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.PublicationModel]{}, err
			}
			return shared.CreatePayload(req.ToModel(), req.BaseInput), nil
		},
		DecodeUpdate: func(c *fiber.Ctx) (shared.Payload[model.PublicationModel], error) {
			var req dto.UpdatePublicationRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.PublicationModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.PublicationModel]{}, err
			}
			return shared.UpdatePayload[model.PublicationModel](req.Updates(), req.BasePatch), nil
		},
		View: func(m *model.PublicationModel, media []mediaModel.MediaItemModel, detail bool) any {
			return dto.ToPublicationDTO(m, media, detail)
		},
	}
}

func PublicationRoutes(api fiber.Router, db *gorm.DB, media *mediaService.Service, g shared.Guards) {
	ctl := shared.NewController[model.PublicationModel, *model.PublicationModel](db, media, Resource())
	shared.Mount(api, "/publications", ctl, g)
}
