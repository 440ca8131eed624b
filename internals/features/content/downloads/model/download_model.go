package model

import "sekolahku_backend/internals/features/content/shared"

type DownloadModel struct {
	shared.Base
	Description   *string `gorm:"column:description"`
	Category      *string `gorm:"column:category;size:80"`
	FileURL       string  `gorm:"column:file_url;not null"`
	FileSize      *int64  `gorm:"column:file_size"`
	MimeType      *string `gorm:"column:mime_type;size:120"`
	DownloadCount int64   `gorm:"column:download_count;not null;default:0"`
}

func (DownloadModel) TableName() string { return "downloads" }
