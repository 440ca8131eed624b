package route

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/content/news/dto"
	"sekolahku_backend/internals/features/content/news/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

func Resource() shared.Resource[model.NewsModel] {
	return shared.Resource[model.NewsModel]{
		Name:       "Berita",
		Table:      "news",
		EntityType: constants.EntityNews,
		SearchCols: []string{"title", "excerpt"},
		SortCols: map[string]string{
			"publishedAt": "published_at",
			"createdAt":   "created_at",
			"title":       "title",
			"viewCount":   "view_count",
		},
		DefaultSort: "publishedAt",
		Filter: func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
			if cat := strings.TrimSpace(c.Query("category")); cat != "" {
				q = q.Where("category = ?", cat)
			}
			if tag := strings.ToLower(strings.TrimSpace(c.Query("tag"))); tag != "" {
				q = q.Where("? = ANY(tags)", tag)
			}
			return q
		},
		DecodeCreate: func(c *fiber.Ctx) (shared.Payload[model.NewsModel], error) {
			var req dto.CreateNewsRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.NewsModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.NewsModel]{}, err
			}
			return shared.CreatePayload(req.ToModel(), req.BaseInput), nil
		},
		DecodeUpdate: func(c *fiber.Ctx) (shared.Payload[model.NewsModel], error) {
			var req dto.UpdateNewsRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.NewsModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.NewsModel]{}, err
			}
			return shared.UpdatePayload[model.NewsModel](req.Updates(), req.BasePatch), nil
		},
		View: func(m *model.NewsModel, media []mediaModel.MediaItemModel, detail bool) any {
			return dto.ToNewsDTO(m, media, detail)
		},
		// view_count best-effort; gagal tidak mengganggu response
		OnDetail: func(ctx context.Context, db *gorm.DB, m *model.NewsModel) {
			if !m.IsPublished {
				return
			}
			if err := db.WithContext(ctx).Model(&model.NewsModel{}).
				Where("id = ?", m.ID).
				UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
				zap.L().Warn("increment view_count", zap.Error(err))
			}
		},
	}
}

func NewsRoutes(api fiber.Router, db *gorm.DB, media *mediaService.Service, g shared.Guards) {
	ctl := shared.NewController[model.NewsModel, *model.NewsModel](db, media, Resource())
	shared.Mount(api, "/news", ctl, g)
}
