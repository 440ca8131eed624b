package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/media/dto"
	"sekolahku_backend/internals/features/media/model"
	helper "sekolahku_backend/internals/helpers"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

/* =========================================================
   Pure helpers
========================================================= */

// ResolveCover: item isMain pertama, kalau tidak ada item dengan urutan terkecil, kalau kosong nil.
func ResolveCover(list []model.MediaItemModel) *model.MediaItemModel {
	if len(list) == 0 {
		return nil
	}
	for i := range list {
		if list[i].IsMain {
			return &list[i]
		}
	}
	first := 0
	for i := range list {
		if list[i].DisplayOrder < list[first].DisplayOrder {
			first = i
		}
	}
	return &list[first]
}

// CoverURL: bentuk ringkas untuk kartu list.
func CoverURL(list []model.MediaItemModel) *string {
	if c := ResolveCover(list); c != nil {
		u := c.URL
		return &u
	}
	return nil
}

// BuildItems mengubah payload menjadi baris siap insert:
// urutan default = posisi di list, isMain hanya dipertahankan pada item pertama yang menandainya.
func BuildItems(entityType string, entityID uuid.UUID, inputs []dto.MediaInput) []model.MediaItemModel {
	out := make([]model.MediaItemModel, 0, len(inputs))
	mainTaken := false
	for i, in := range inputs {
		order := i
		if in.DisplayOrder != nil {
			order = *in.DisplayOrder
		}
		isMain := in.IsMain && !mainTaken
		if isMain {
			mainTaken = true
		}
		out = append(out, model.MediaItemModel{
			EntityType:   entityType,
			EntityID:     entityID,
			URL:          strings.TrimSpace(in.URL),
			MediaType:    in.Type,
			DisplayOrder: order,
			IsMain:       isMain,
			Caption:      helper.TrimPtr(in.Caption),
			StoragePath:  helper.TrimPtr(in.StoragePath),
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].DisplayOrder < out[b].DisplayOrder })
	return out
}

// ValidateInputs memvalidasi setiap item; error dikunci dengan prefix media[i].
func ValidateInputs(inputs []dto.MediaInput) error {
	fields := map[string][]string{}
	for i := range inputs {
		if err := helper.ValidateStruct(inputs[i]); err != nil {
			var ae *helper.AppError
			if errors.As(err, &ae) {
				for f, msgs := range ae.Fields {
					key := "media[" + strconv.Itoa(i) + "]." + f
					fields[key] = append(fields[key], msgs...)
				}
			}
		}
	}
	if len(fields) > 0 {
		return helper.ValidationError("Data media tidak valid", fields)
	}
	return nil
}

/* =========================================================
   Queries
========================================================= */

func (s *Service) ListMedia(ctx context.Context, entityType string, entityID uuid.UUID) ([]model.MediaItemModel, error) {
	var rows []model.MediaItemModel
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("display_order ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListMediaBatch memuat media banyak entitas sekaligus (hindari N+1 di list).
func (s *Service) ListMediaBatch(ctx context.Context, entityType string, ids []uuid.UUID) (map[uuid.UUID][]model.MediaItemModel, error) {
	out := make(map[uuid.UUID][]model.MediaItemModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.MediaItemModel
	if err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id IN ?", entityType, ids).
		Order("entity_id, display_order ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.EntityID] = append(out[r.EntityID], r)
	}
	return out, nil
}

/* =========================================================
   Writes (selalu di dalam transaksi pemanggil)
========================================================= */

// lockParent mengunci baris induk agar dua replace pada entitas yang sama berjalan berurutan.
func lockParent(tx *gorm.DB, entityType string, entityID uuid.UUID) error {
	table, ok := constants.EntityTables[entityType]
	if !ok {
		return helper.FieldError("entityType", "entityType tidak dikenal")
	}
	var ids []uuid.UUID
	if err := tx.Table(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", entityID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return helper.NotFound("Entitas induk tidak ditemukan")
	}
	return nil
}

// ReplaceMedia: hapus semua lalu insert set baru, di tx yang sama dengan penulisan entitas.
func (s *Service) ReplaceMedia(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID, inputs []dto.MediaInput) ([]model.MediaItemModel, error) {
	tx = tx.WithContext(ctx)
	if err := lockParent(tx, entityType, entityID); err != nil {
		return nil, err
	}
	if err := tx.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&model.MediaItemModel{}).Error; err != nil {
		return nil, err
	}
	items := BuildItems(entityType, entityID, inputs)
	if len(items) == 0 {
		return items, nil
	}
	if err := tx.Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AttachOne menambah satu item di urutan paling akhir (dipakai upload proxy).
func (s *Service) AttachOne(ctx context.Context, entityType string, entityID uuid.UUID, in dto.MediaInput) (*model.MediaItemModel, error) {
	var created model.MediaItemModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockParent(tx, entityType, entityID); err != nil {
			return err
		}
		var maxOrder *int
		if err := tx.Model(&model.MediaItemModel{}).
			Where("entity_type = ? AND entity_id = ?", entityType, entityID).
			Select("MAX(display_order)").Scan(&maxOrder).Error; err != nil {
			return err
		}
		next := 0
		if maxOrder != nil {
			next = *maxOrder + 1
		}
		if in.IsMain {
			if err := tx.Model(&model.MediaItemModel{}).
				Where("entity_type = ? AND entity_id = ? AND is_main", entityType, entityID).
				Update("is_main", false).Error; err != nil {
				return err
			}
		}
		items := BuildItems(entityType, entityID, []dto.MediaInput{in})
		created = items[0]
		created.DisplayOrder = next
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) DeleteForEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID uuid.UUID) error {
	return tx.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&model.MediaItemModel{}).Error
}
