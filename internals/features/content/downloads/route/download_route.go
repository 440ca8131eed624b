package route

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/content/downloads/dto"
	"sekolahku_backend/internals/features/content/downloads/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/storage"
)

// Resource: files di Supabase ikut dihapus (best-effort) bila browser diset.
func Resource(files storage.Browser) shared.Resource[model.DownloadModel] {
	return shared.Resource[model.DownloadModel]{
		Name:       "Unduhan",
		Table:      "downloads",
		SearchCols: []string{"title", "category", "description"},
		SortCols: map[string]string{
			"publishedAt":   "published_at",
			"createdAt":     "created_at",
			"title":         "title",
			"downloadCount": "download_count",
		},
		DefaultSort: "publishedAt",
		Filter: func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
			if cat := strings.TrimSpace(c.Query("category")); cat != "" {
				q = q.Where("LOWER(category) = LOWER(?)", cat)
			}
			return q
		},
		DecodeCreate: func(c *fiber.Ctx) (shared.Payload[model.DownloadModel], error) {
			var req dto.CreateDownloadRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.DownloadModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.DownloadModel]{}, err
			}
			return shared.CreatePayload(req.ToModel(), req.BaseInput), nil
		},
		DecodeUpdate: func(c *fiber.Ctx) (shared.Payload[model.DownloadModel], error) {
			var req dto.UpdateDownloadRequest
			if err := helper.BodyParse(c, &req); err != nil {
				return shared.Payload[model.DownloadModel]{}, err
			}
			if err := helper.ValidateStruct(req); err != nil {
				return shared.Payload[model.DownloadModel]{}, err
			}
			return shared.UpdatePayload[model.DownloadModel](req.Updates(), req.BasePatch), nil
		},
		View: func(m *model.DownloadModel, _ []mediaModel.MediaItemModel, _ bool) any {
			return dto.ToDownloadDTO(m)
		},
		AfterDelete: func(ctx context.Context, m *model.DownloadModel) {
			if files == nil {
				return
			}
			bucket, p, err := storage.ExtractSupabasePath(m.FileURL)
			if err != nil {
				return // bukan file Supabase (link eksternal)
			}
			ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			if err := files.Remove(ctx, bucket, []string{p}); err != nil {
				zap.L().Warn("gagal hapus file unduhan", zap.String("path", p), zap.Error(err))
			}
		},
	}
}

// Hit menaikkan download_count; hanya untuk unduhan yang sudah terbit.
func Hit(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}
		var count int64
		res := db.WithContext(c.UserContext()).
			Model(&model.DownloadModel{}).
			Where("id = ? AND is_published = TRUE", id).
			UpdateColumn("download_count", gorm.Expr("download_count + 1"))
		if res.Error != nil {
			return helper.Upstream(res.Error, "increment download_count")
		}
		if res.RowsAffected == 0 {
			return helper.NotFound("Unduhan tidak ditemukan")
		}
		if err := db.WithContext(c.UserContext()).
			Model(&model.DownloadModel{}).
			Where("id = ?", id).
			Pluck("download_count", &count).Error; err != nil {
			return helper.Upstream(err, "read download_count")
		}
		return helper.JsonOK(c, "", fiber.Map{"id": id, "downloadCount": count})
	}
}

func DownloadRoutes(api fiber.Router, db *gorm.DB, media *mediaService.Service, files storage.Browser, g shared.Guards) {
	ctl := shared.NewController[model.DownloadModel, *model.DownloadModel](db, media, Resource(files))
	r := shared.Mount(api, "/downloads", ctl, g)
	r.Post("/:id/hit", Hit(db))
}
