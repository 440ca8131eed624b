package dto

import (
	"strings"

	"sekolahku_backend/internals/features/content/downloads/model"
	"sekolahku_backend/internals/features/content/shared"
	helper "sekolahku_backend/internals/helpers"
)

type CreateDownloadRequest struct {
	shared.BaseInput
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=80"`
	FileURL     string  `json:"fileUrl" validate:"required,url"`
	FileSize    *int64  `json:"fileSize" validate:"omitempty,min=0"`
	MimeType    *string `json:"mimeType" validate:"omitempty,max=120"`
}

func (r CreateDownloadRequest) ToModel() *model.DownloadModel {
	return &model.DownloadModel{
		Base:        r.ToBase(),
		Description: r.Description,
		Category:    helper.TrimPtr(r.Category),
		FileURL:     strings.TrimSpace(r.FileURL),
		FileSize:    r.FileSize,
		MimeType:    helper.TrimPtr(r.MimeType),
	}
}

type UpdateDownloadRequest struct {
	shared.BasePatch
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=80"`
	FileURL     *string `json:"fileUrl" validate:"omitempty,url"`
	FileSize    *int64  `json:"fileSize" validate:"omitempty,min=0"`
	MimeType    *string `json:"mimeType" validate:"omitempty,max=120"`
}

func (r UpdateDownloadRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.Description != nil {
		u["description"] = *r.Description
	}
	if r.Category != nil {
		u["category"] = helper.TrimPtr(r.Category)
	}
	if r.FileURL != nil {
		u["file_url"] = strings.TrimSpace(*r.FileURL)
	}
	if r.FileSize != nil {
		u["file_size"] = *r.FileSize
	}
	if r.MimeType != nil {
		u["mime_type"] = helper.TrimPtr(r.MimeType)
	}
	return u
}

type DownloadDTO struct {
	shared.BaseDTO
	Description   *string `json:"description"`
	Category      *string `json:"category"`
	FileURL       string  `json:"fileUrl"`
	FileSize      *int64  `json:"fileSize"`
	MimeType      *string `json:"mimeType"`
	DownloadCount int64   `json:"downloadCount"`
}

func ToDownloadDTO(m *model.DownloadModel) DownloadDTO {
	return DownloadDTO{
		BaseDTO:       shared.ToBaseDTO(m.Base),
		Description:   m.Description,
		Category:      m.Category,
		FileURL:       m.FileURL,
		FileSize:      m.FileSize,
		MimeType:      m.MimeType,
		DownloadCount: m.DownloadCount,
	}
}
