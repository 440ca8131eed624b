package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentEventModel: log mentah notifikasi Midtrans, juga yang tidak cocok dengan pendaftaran mana pun.
type PaymentEventModel struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RegistrationID    *uuid.UUID     `gorm:"column:registration_id;type:uuid"`
	OrderID           string         `gorm:"column:order_id;size:80;not null"`
	TransactionStatus *string        `gorm:"column:transaction_status;size:30"`
	RawPayload        datatypes.JSON `gorm:"column:raw_payload;type:jsonb;not null"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (PaymentEventModel) TableName() string { return "payment_events" }
