package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/media/model"
)

// MediaInput: satu item media di payload create/update konten.
type MediaInput struct {
	URL          string  `json:"url" validate:"required,url"`
	Type         string  `json:"type" validate:"required,oneof=image video embed"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0"`
	IsMain       bool    `json:"isMain"`
	Caption      *string `json:"caption" validate:"omitempty,max=500"`
	StoragePath  *string `json:"storagePath"`
}

type MediaDTO struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	DisplayOrder int       `json:"displayOrder"`
	IsMain       bool      `json:"isMain"`
	Caption      *string   `json:"caption,omitempty"`
	StoragePath  *string   `json:"storagePath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToMediaDTO(m model.MediaItemModel) MediaDTO {
	return MediaDTO{
		ID:           m.ID,
		URL:          m.URL,
		Type:         m.MediaType,
		DisplayOrder: m.DisplayOrder,
		IsMain:       m.IsMain,
		Caption:      m.Caption,
		StoragePath:  m.StoragePath,
		CreatedAt:    m.CreatedAt,
	}
}

func ToMediaDTOs(list []model.MediaItemModel) []MediaDTO {
	out := make([]MediaDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToMediaDTO(m))
	}
	return out
}
