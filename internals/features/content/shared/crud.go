package shared

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// Row membatasi M ke model konten yang meng-embed Base.
type Row[M any] interface {
	*M
	GetID() uuid.UUID
	GetTitle() string
	SetSlug(string)
	Published() bool
	EnsurePublishedAt(time.Time)
}

// Resource mendeskripsikan satu entitas konten untuk Controller generik.
type Resource[M any] struct {
	Name        string // label untuk pesan, mis. "Berita"
	Table       string
	EntityType  string // kosong = entitas tanpa media
	SearchCols  []string
	SortCols    map[string]string
	DefaultSort string

	Filter       func(c *fiber.Ctx, q *gorm.DB) *gorm.DB
	DecodeCreate func(c *fiber.Ctx) (Payload[M], error)
	DecodeUpdate func(c *fiber.Ctx) (Payload[M], error)
	View         func(m *M, media []mediaModel.MediaItemModel, detail bool) any

	// hook opsional
	OnDetail    func(ctx context.Context, db *gorm.DB, m *M)
	AfterDelete func(ctx context.Context, m *M)
}

type Controller[M any, P Row[M]] struct {
	DB    *gorm.DB
	Media *mediaService.Service
	R     Resource[M]
}

func NewController[M any, P Row[M]](db *gorm.DB, media *mediaService.Service, r Resource[M]) *Controller[M, P] {
	return &Controller[M, P]{DB: db, Media: media, R: r}
}

// canSeeDrafts: admin dengan content.manage + ?includeDrafts=true.
func canSeeDrafts(c *fiber.Ctx) bool {
	s, ok := helperAuth.SessionFrom(c)
	if !ok || !constants.HasCapability(s.Role, constants.CapContentManage) {
		return false
	}
	return helper.ParseBool(c.Query("includeDrafts")) || helper.ParseBool(c.Query("include_drafts"))
}

/* =========================================================
   LIST
   GET /api/<entity>?page=&pageSize=&q=&sortBy=&order=
========================================================= */

func (ctl *Controller[M, P]) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := helper.ResolvePaging(c, helper.DefaultOpts)

	q := ctl.DB.WithContext(ctx).Model(new(M))
	if !canSeeDrafts(c) {
		q = q.Where("is_published = TRUE")
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" && len(ctl.R.SearchCols) > 0 {
		like := "%" + s + "%"
		conds := make([]string, 0, len(ctl.R.SearchCols))
		args := make([]any, 0, len(ctl.R.SearchCols))
		for _, col := range ctl.R.SearchCols {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, like)
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	if ctl.R.Filter != nil {
		q = ctl.R.Filter(c, q)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Upstream(err, "count "+ctl.R.Table)
	}

	order := helper.SafeOrderClause(ctl.R.SortCols, c.Query("sortBy"), c.Query("order"), ctl.R.DefaultSort)
	var rows []M
	if err := q.Order(order).Order("id").Offset(p.Offset()).Limit(p.Limit()).Find(&rows).Error; err != nil {
		return helper.Upstream(err, "list "+ctl.R.Table)
	}

	mediaByID := map[uuid.UUID][]mediaModel.MediaItemModel{}
	if ctl.R.EntityType != "" && len(rows) > 0 {
		ids := make([]uuid.UUID, 0, len(rows))
		for i := range rows {
			ids = append(ids, P(&rows[i]).GetID())
		}
		var err error
		if mediaByID, err = ctl.Media.ListMediaBatch(ctx, ctl.R.EntityType, ids); err != nil {
			return helper.Upstream(err, "load media")
		}
	}

	items := make([]any, 0, len(rows))
	for i := range rows {
		items = append(items, ctl.R.View(&rows[i], mediaByID[P(&rows[i]).GetID()], false))
	}
	return helper.JsonList(c, items, total, p)
}

/* =========================================================
   GET by UUID atau slug
========================================================= */

func (ctl *Controller[M, P]) findOne(ctx context.Context, db *gorm.DB, raw string) (*M, error) {
	var m M
	q := db.WithContext(ctx)
	id, slug := helper.IDOrSlug(raw)
	if id != nil {
		q = q.Where("id = ?", *id)
	} else {
		q = q.Where("LOWER(slug) = ?", slug)
	}
	if err := q.Take(&m).Error; err != nil {
		return nil, helper.DBError(err, ctl.R.Name+" tidak ditemukan", "")
	}
	return &m, nil
}

func (ctl *Controller[M, P]) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	m, err := ctl.findOne(ctx, ctl.DB, c.Params("id"))
	if err != nil {
		return err
	}
	// draft disembunyikan dari publik seolah tidak ada
	if !P(m).Published() && !canSeeDrafts(c) {
		return helper.NotFound(ctl.R.Name + " tidak ditemukan")
	}

	var media []mediaModel.MediaItemModel
	if ctl.R.EntityType != "" {
		if media, err = ctl.Media.ListMedia(ctx, ctl.R.EntityType, P(m).GetID()); err != nil {
			return helper.Upstream(err, "load media")
		}
	}
	if ctl.R.OnDetail != nil {
		ctl.R.OnDetail(ctx, ctl.DB, m)
	}
	return helper.JsonOK(c, "", ctl.R.View(m, media, true))
}

/* =========================================================
   CREATE (entitas + media dalam satu transaksi)
========================================================= */

func (ctl *Controller[M, P]) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pl, err := ctl.R.DecodeCreate(c)
	if err != nil {
		return err
	}
	if pl.HasMedia && ctl.R.EntityType != "" {
		if err := mediaService.ValidateInputs(pl.Media); err != nil {
			return err
		}
	}

	m := pl.Model
	P(m).EnsurePublishedAt(time.Now())
	var media []mediaModel.MediaItemModel

	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := ctl.resolveSlug(ctx, tx, pl.Slug, P(m).GetTitle(), nil)
		if err != nil {
			return err
		}
		P(m).SetSlug(slug)
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if pl.HasMedia && ctl.R.EntityType != "" {
			media, err = ctl.Media.ReplaceMedia(ctx, tx, ctl.R.EntityType, P(m).GetID(), pl.Media)
			return err
		}
		return nil
	})
	if err != nil {
		return ctl.writeError(err)
	}
	return helper.JsonCreated(c, ctl.R.Name+" berhasil dibuat", ctl.R.View(m, media, true))
}

/* =========================================================
   UPDATE (hanya field yang dikirim; media full-replace bila ada)
========================================================= */

func (ctl *Controller[M, P]) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pl, err := ctl.R.DecodeUpdate(c)
	if err != nil {
		return err
	}
	if pl.HasMedia && ctl.R.EntityType != "" {
		if err := mediaService.ValidateInputs(pl.Media); err != nil {
			return err
		}
	}

	var (
		m     *M
		media []mediaModel.MediaItemModel
	)
	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := ctl.findOne(ctx, tx, c.Params("id"))
		if err != nil {
			return err
		}
		id := P(found).GetID()

		updates := pl.Updates
		if updates == nil {
			updates = map[string]any{}
		}
		if pl.Slug != nil {
			slug, err := ctl.resolveSlug(ctx, tx, pl.Slug, P(found).GetTitle(), &id)
			if err != nil {
				return err
			}
			updates["slug"] = slug
		}
		if v, ok := updates["is_published"].(bool); ok && v {
			if _, has := updates["published_at"]; !has {
				updates["published_at"] = gorm.Expr("COALESCE(published_at, NOW())")
			}
		}
		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			if err := tx.Model(found).Updates(updates).Error; err != nil {
				return err
			}
		}
		if pl.HasMedia && ctl.R.EntityType != "" {
			if _, err := ctl.Media.ReplaceMedia(ctx, tx, ctl.R.EntityType, id, pl.Media); err != nil {
				return err
			}
		}

		m, err = ctl.findOne(ctx, tx, id.String())
		if err != nil {
			return err
		}
		if ctl.R.EntityType != "" {
			if media, err = mediaListTx(ctx, tx, ctl.R.EntityType, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctl.writeError(err)
	}
	return helper.JsonUpdated(c, ctl.R.Name+" berhasil diperbarui", ctl.R.View(m, media, true))
}

func mediaListTx(ctx context.Context, tx *gorm.DB, entityType string, id uuid.UUID) ([]mediaModel.MediaItemModel, error) {
	var rows []mediaModel.MediaItemModel
	err := tx.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, id).
		Order("display_order ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

/* =========================================================
   DELETE (media dulu, lalu entitas, satu transaksi)
========================================================= */

func (ctl *Controller[M, P]) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var deleted *M
	err := ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := ctl.findOne(ctx, tx, c.Params("id"))
		if err != nil {
			return err
		}
		if ctl.R.EntityType != "" {
			if err := ctl.Media.DeleteForEntity(ctx, tx, ctl.R.EntityType, P(m).GetID()); err != nil {
				return err
			}
		}
		if err := tx.Delete(m).Error; err != nil {
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return ctl.writeError(err)
	}
	if ctl.R.AfterDelete != nil {
		ctl.R.AfterDelete(context.Background(), deleted)
	}
	return helper.JsonDeleted(c, ctl.R.Name+" berhasil dihapus", fiber.Map{"id": P(deleted).GetID()})
}

/* =========================================================
   helpers
========================================================= */

// resolveSlug: slug eksplisit diprioritaskan, selain itu dari judul; selalu dibuat unik.
func (ctl *Controller[M, P]) resolveSlug(ctx context.Context, tx *gorm.DB, explicit *string, title string, exclude *uuid.UUID) (string, error) {
	src := title
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		src = *explicit
	}
	return helper.EnsureUniqueSlugCI(ctx, tx, ctl.R.Table, helper.Slugify(src, helper.SlugMaxLen), exclude)
}

// writeError: AppError diteruskan apa adanya, sisanya dipetakan lewat DBError.
func (ctl *Controller[M, P]) writeError(err error) error {
	var ae *helper.AppError
	if errors.As(err, &ae) {
		return ae
	}
	return helper.DBError(err, ctl.R.Name+" tidak ditemukan", "Slug "+strings.ToLower(ctl.R.Name)+" sudah dipakai")
}
