package model

import "sekolahku_backend/internals/features/content/shared"

type PublicationModel struct {
	shared.Base
	Abstract        *string `gorm:"column:abstract"`
	AuthorName      *string `gorm:"column:author_name;size:150"`
	PublicationType *string `gorm:"column:publication_type;size:20"`
	FileURL         *string `gorm:"column:file_url"`
}

func (PublicationModel) TableName() string { return "publications" }
