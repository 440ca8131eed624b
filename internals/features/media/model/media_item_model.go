package model

import (
	"time"

	"github.com/google/uuid"
)

type MediaItemModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EntityType   string    `gorm:"column:entity_type;size:20;not null"`
	EntityID     uuid.UUID `gorm:"column:entity_id;type:uuid;not null"`
	URL          string    `gorm:"column:url;not null"`
	MediaType    string    `gorm:"column:media_type;size:10;not null"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	IsMain       bool      `gorm:"column:is_main;not null;default:false"`
	Caption      *string   `gorm:"column:caption"`
	StoragePath  *string   `gorm:"column:storage_path"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MediaItemModel) TableName() string { return "media_items" }
