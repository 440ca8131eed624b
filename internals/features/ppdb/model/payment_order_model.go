package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentOrderModel: semua order Snap milik satu pendaftar, bukan hanya yang terakhir.
type PaymentOrderModel struct {
	OrderID        string    `gorm:"column:order_id;size:80;primaryKey"`
	RegistrationID uuid.UUID `gorm:"column:registration_id;type:uuid;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PaymentOrderModel) TableName() string { return "payment_orders" }
