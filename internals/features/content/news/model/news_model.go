package model

import (
	"github.com/lib/pq"

	"sekolahku_backend/internals/features/content/shared"
)

type NewsModel struct {
	shared.Base
	Excerpt    *string        `gorm:"column:excerpt"`
	Content    *string        `gorm:"column:content"`
	Category   *string        `gorm:"column:category;size:80"`
	Tags       pq.StringArray `gorm:"column:tags;type:text[]"`
	AuthorName *string        `gorm:"column:author_name;size:150"`
	ViewCount  int64          `gorm:"column:view_count;not null;default:0"`
}

func (NewsModel) TableName() string { return "news" }
