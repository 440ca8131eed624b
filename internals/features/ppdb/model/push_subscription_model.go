package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PushKeys disimpan sebagai JSONB {"p256dh": "...", "auth": "..."}.
type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type PushSubscriptionModel struct {
	ID             uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RegistrationID uuid.UUID                    `gorm:"column:registration_id;type:uuid;not null"`
	Endpoint       string                       `gorm:"column:endpoint;not null"`
	Keys           datatypes.JSONType[PushKeys] `gorm:"column:keys;type:jsonb;not null"`
	UserAgent      *string                      `gorm:"column:user_agent"`
	LastError      *string                      `gorm:"column:last_error"`
	DisabledAt     *time.Time                   `gorm:"column:disabled_at"`
	CreatedAt      time.Time                    `gorm:"column:created_at;autoCreateTime"`
}

func (PushSubscriptionModel) TableName() string { return "push_subscriptions" }
