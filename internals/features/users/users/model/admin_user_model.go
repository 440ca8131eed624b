package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminUserModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string     `gorm:"column:username;size:50;not null"`
	Email        *string    `gorm:"column:email;size:150"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         string     `gorm:"column:role;size:20;not null;default:admin"`
	FullName     *string    `gorm:"column:full_name;size:150"`
	Phone        *string    `gorm:"column:phone;size:30"`
	AvatarURL    *string    `gorm:"column:avatar_url"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (AdminUserModel) TableName() string { return "admin_users" }
