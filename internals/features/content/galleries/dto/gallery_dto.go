package dto

import (
	"time"

	"sekolahku_backend/internals/features/content/galleries/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaDTO "sekolahku_backend/internals/features/media/dto"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

type CreateGalleryRequest struct {
	shared.BaseInput
	Description *string `json:"description"`
	EventDate   *string `json:"eventDate" validate:"omitempty,date"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

func (r CreateGalleryRequest) ToModel() *model.GalleryModel {
	return &model.GalleryModel{
		Base:        r.ToBase(),
		Description: r.Description,
		EventDate:   parseDate(r.EventDate),
		Location:    helper.TrimPtr(r.Location),
	}
}

type UpdateGalleryRequest struct {
	shared.BasePatch
	Description *string `json:"description"`
	EventDate   *string `json:"eventDate" validate:"omitempty,date"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

func (r UpdateGalleryRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.Description != nil {
		u["description"] = *r.Description
	}
	if r.EventDate != nil {
		u["event_date"] = parseDate(r.EventDate)
	}
	if r.Location != nil {
		u["location"] = helper.TrimPtr(r.Location)
	}
	return u
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

type GalleryDTO struct {
	shared.BaseDTO
	Description *string             `json:"description"`
	EventDate   *string             `json:"eventDate"`
	Location    *string             `json:"location"`
	CoverURL    *string             `json:"coverUrl"`
	MediaCount  int                 `json:"mediaCount"`
	Media       []mediaDTO.MediaDTO `json:"media,omitempty"`
}

// ToGalleryDTO: galeri di list tetap menampilkan jumlah foto.
func ToGalleryDTO(m *model.GalleryModel, media []mediaModel.MediaItemModel, detail bool) GalleryDTO {
	out := GalleryDTO{
		BaseDTO:     shared.ToBaseDTO(m.Base),
		Description: m.Description,
		Location:    m.Location,
		CoverURL:    mediaService.CoverURL(media),
		MediaCount:  len(media),
	}
	if m.EventDate != nil {
		d := m.EventDate.Format("2006-01-02")
		out.EventDate = &d
	}
	if detail {
		out.Media = mediaDTO.ToMediaDTOs(media)
	}
	return out
}
