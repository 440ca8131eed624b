package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/model"
)

// Repository: semua akses tabel PPDB. Error "tidak ada" = gorm.ErrRecordNotFound.
type Repository interface {
	Create(ctx context.Context, r *model.RegistrationModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RegistrationModel, error)
	FindByIdentifier(ctx context.Context, nisnOrNik string) (*model.RegistrationModel, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.RegistrationModel, error)
	List(ctx context.Context, q dto.ListQuery) ([]model.RegistrationModel, int64, error)
	ListAll(ctx context.Context, status string) ([]model.RegistrationModel, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, message *string) (*model.RegistrationModel, error)
	// SetPayment mencatat order baru (payment_orders) dan menjadikannya order aktif.
	SetPayment(ctx context.Context, id uuid.UUID, orderID, paymentStatus string) error
	// UpdatePaymentStatus menulis status dan menjadikan orderID order aktif.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, orderID, paymentStatus string) error
	LogPaymentEvent(ctx context.Context, ev *model.PaymentEventModel) error

	UpsertPushSubscription(ctx context.Context, s *model.PushSubscriptionModel) error
	ActivePushSubscriptions(ctx context.Context, registrationID uuid.UUID) ([]model.PushSubscriptionModel, error)
	DisablePushSubscription(ctx context.Context, id uuid.UUID, reason string) error
	PruneDisabledPush(ctx context.Context, before time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

/* ====================== REGISTRATION ====================== */

func (r *gormRepository) Create(ctx context.Context, m *model.RegistrationModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RegistrationModel, error) {
	var m model.RegistrationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) FindByIdentifier(ctx context.Context, ident string) (*model.RegistrationModel, error) {
	var m model.RegistrationModel
	if err := r.db.WithContext(ctx).
		Where("nisn = ? OR nik = ?", ident, ident).
		Order("created_at DESC").
		Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) FindByOrderID(ctx context.Context, orderID string) (*model.RegistrationModel, error) {
	var m model.RegistrationModel
	// order lama tetap ditemukan lewat payment_orders
	err := r.db.WithContext(ctx).
		Where("id = (SELECT registration_id FROM payment_orders WHERE order_id = ?)", orderID).
		Take(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) filtered(ctx context.Context, status, q string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.RegistrationModel{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("(full_name ILIKE ? OR nik LIKE ? OR nisn LIKE ?)", like, like, like)
	}
	return tx
}

func (r *gormRepository) List(ctx context.Context, q dto.ListQuery) ([]model.RegistrationModel, int64, error) {
	var total int64
	if err := r.filtered(ctx, q.Status, q.Q).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.RegistrationModel
	if err := r.filtered(ctx, q.Status, q.Q).
		Order("created_at DESC").Order("id").
		Offset(q.Paging.Offset()).Limit(q.Paging.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) ListAll(ctx context.Context, status string) ([]model.RegistrationModel, error) {
	var rows []model.RegistrationModel
	err := r.filtered(ctx, status, "").Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, message *string) (*model.RegistrationModel, error) {
	var out model.RegistrationModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.RegistrationModel{}).
			Where("id = ?", id).
			Updates(map[string]any{"status": status, "message": message, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *gormRepository) SetPayment(ctx context.Context, id uuid.UUID, orderID, paymentStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PaymentOrderModel{OrderID: orderID, RegistrationID: id}).Error; err != nil {
			return err
		}
		return setPayment(tx, id, orderID, paymentStatus)
	})
}

func (r *gormRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, orderID, paymentStatus string) error {
	return setPayment(r.db.WithContext(ctx), id, orderID, paymentStatus)
}

func setPayment(db *gorm.DB, id uuid.UUID, orderID, paymentStatus string) error {
	res := db.Model(&model.RegistrationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"payment_order_id": orderID, "payment_status": paymentStatus, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) LogPaymentEvent(ctx context.Context, ev *model.PaymentEventModel) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

/* ====================== PUSH ====================== */

// UpsertPushSubscription: endpoint sama → pindah ke pendaftar baru & aktif lagi.
func (r *gormRepository) UpsertPushSubscription(ctx context.Context, s *model.PushSubscriptionModel) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.Assignments(map[string]any{
			"registration_id": s.RegistrationID,
			"keys":            s.Keys,
			"user_agent":      s.UserAgent,
			"last_error":      nil,
			"disabled_at":     nil,
		}),
	}).Create(s).Error
}

func (r *gormRepository) ActivePushSubscriptions(ctx context.Context, registrationID uuid.UUID) ([]model.PushSubscriptionModel, error) {
	var rows []model.PushSubscriptionModel
	err := r.db.WithContext(ctx).
		Where("registration_id = ? AND disabled_at IS NULL", registrationID).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) DisablePushSubscription(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&model.PushSubscriptionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"disabled_at": time.Now(), "last_error": reason}).Error
}

func (r *gormRepository) PruneDisabledPush(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("disabled_at IS NOT NULL AND disabled_at < ?", before).
		Delete(&model.PushSubscriptionModel{})
	return res.RowsAffected, res.Error
}
