package route

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/content/achievements/dto"
	"sekolahku_backend/internals/features/content/achievements/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

func Resource() shared.Resource[model.AchievementModel] {
	return shared.Resource[model.AchievementModel]{
		Name:       "Prestasi",
		Table:      "achievements",
		EntityType: constants.EntityAchievement,
		SearchCols: []string{"title", "student_name", "organizer"},
		SortCols: map[string]string{
			"achievedAt":  "achieved_at",
			"publishedAt": "published_at",
			"createdAt":   "created_at",
			"title":       "title",
		},
		DefaultSort: "achievedAt",
		Filter: func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
			if lvl := strings.TrimSpace(c.Query("level")); lvl != "" {
				q = q.Where("level = ?", lvl)
			}
			if y := strings.TrimSpace(c.Query("year")); y != "" {
				q = q.Where("EXTRACT(YEAR FROM achieved_at)::text = ?", y)
			}
			return q
		},
		DecodeCreate: func(c *fiber.Ctx) (shared.Payload[model.AchievementModel], error) {
			var req dto.CreateAchievementRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.AchievementModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.AchievementModel]{}, err
			}
			return shared.CreatePayload(req.ToModel(), req.BaseInput), nil
		},
		DecodeUpdate: func(c *fiber.Ctx) (shared.Payload[model.AchievementModel], error) {
			var req dto.UpdateAchievementRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.AchievementModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.AchievementModel]{}, err
			}
			return shared.UpdatePayload[model.AchievementModel](req.Updates(), req.BasePatch), nil
		},
		View: func(m *model.AchievementModel, media []mediaModel.MediaItemModel, detail bool) any {
			return dto.ToAchievementDTO(m, media, detail)
		},
	}
}

func AchievementRoutes(api fiber.Router, db *gorm.DB, media *mediaService.Service, g shared.Guards) {
	ctl := shared.NewController[model.AchievementModel, *model.AchievementModel](db, media, Resource())
	shared.Mount(api, "/achievements", ctl, g)
}
