package model

import (
	"time"

	"sekolahku_backend/internals/features/content/shared"
)

type GalleryModel struct {
	shared.Base
	Description *string    `gorm:"column:description"`
	EventDate   *time.Time `gorm:"column:event_date;type:date"`
	Location    *string    `gorm:"column:location;size:200"`
}

func (GalleryModel) TableName() string { return "galleries" }
