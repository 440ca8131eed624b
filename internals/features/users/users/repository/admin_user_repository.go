package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/users/model"
	helper "sekolahku_backend/internals/helpers"
)

// ErrLastSuperadmin: operasi akan membuat sistem tanpa superadmin.
var ErrLastSuperadmin = errors.New("last superadmin")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUserModel, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUserModel, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUserModel, error)
	List(ctx context.Context, q string, p helper.Paging) ([]model.AdminUserModel, int64, error)
	Create(ctx context.Context, u *model.AdminUserModel) error
	// Update & Delete menolak (ErrLastSuperadmin) bila superadmin aktif terakhir akan hilang.
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.AdminUserModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUserModel, error) {
	var u model.AdminUserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUserModel, error) {
	var u model.AdminUserModel
	if err := r.db.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*model.AdminUserModel, error) {
	var u model.AdminUserModel
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) List(ctx context.Context, q string, p helper.Paging) ([]model.AdminUserModel, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.AdminUserModel{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		base = base.Where("(username ILIKE ? OR email ILIKE ? OR full_name ILIKE ?)", like, like, like)
	}
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.AdminUserModel
	if err := base.Order("created_at ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) Create(ctx context.Context, u *model.AdminUserModel) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// lockSuperadmins mengunci semua baris superadmin aktif agar dua request
// hapus/demote yang bersamaan tidak sama-sama lolos.
func lockSuperadmins(tx *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.AdminUserModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("role = ? AND is_active = TRUE", constants.RoleSuperadmin).
		Pluck("id", &ids).Error
	return ids, err
}

// losesSuperadmin: apakah perubahan ini mencabut status superadmin aktif dari target.
func losesSuperadmin(target *model.AdminUserModel, updates map[string]any) bool {
	if target.Role != constants.RoleSuperadmin || !target.IsActive {
		return false
	}
	if role, ok := updates["role"].(string); ok && role != constants.RoleSuperadmin {
		return true
	}
	if active, ok := updates["is_active"].(bool); ok && !active {
		return true
	}
	return false
}

func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.AdminUserModel, error) {
	var out model.AdminUserModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supers, err := lockSuperadmins(tx)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Take(&out).Error; err != nil {
			return err
		}
		if losesSuperadmin(&out, updates) && len(supers) <= 1 {
			return ErrLastSuperadmin
		}
		if len(updates) == 0 {
			return nil
		}
		updates["updated_at"] = time.Now()
		if err := tx.Model(&model.AdminUserModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supers, err := lockSuperadmins(tx)
		if err != nil {
			return err
		}
		var target model.AdminUserModel
		if err := tx.Where("id = ?", id).Take(&target).Error; err != nil {
			return err
		}
		if target.Role == constants.RoleSuperadmin && target.IsActive && len(supers) <= 1 {
			return ErrLastSuperadmin
		}
		return tx.Delete(&target).Error
	})
}

func (r *gormRepository) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.AdminUserModel{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}
