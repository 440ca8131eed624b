package dto

import (
	"sekolahku_backend/internals/features/content/publications/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaDTO "sekolahku_backend/internals/features/media/dto"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

type CreatePublicationRequest struct {
	shared.BaseInput
	Abstract        *string `json:"abstract"`
	AuthorName      *string `json:"authorName" validate:"omitempty,max=150"`
	PublicationType *string `json:"publicationType" validate:"omitempty,oneof=jurnal majalah buletin artikel"`
	FileURL         *string `json:"fileUrl" validate:"omitempty,url"`
}

func (r CreatePublicationRequest) ToModel() *model.PublicationModel {
	return &model.PublicationModel{
		Base:            r.ToBase(),
		Abstract:        r.Abstract,
		AuthorName:      helper.TrimPtr(r.AuthorName),
		PublicationType: helper.TrimPtr(r.PublicationType),
		FileURL:         helper.TrimPtr(r.FileURL),
	}
}

type UpdatePublicationRequest struct {
	shared.BasePatch
	Abstract        *string `json:"abstract"`
	AuthorName      *string `json:"authorName" validate:"omitempty,max=150"`
	PublicationType *string `json:"publicationType" validate:"omitempty,oneof=jurnal majalah buletin artikel"`
	FileURL         *string `json:"fileUrl" validate:"omitempty,url"`
}

func (r UpdatePublicationRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.Abstract != nil {
		u["abstract"] = *r.Abstract
	}
	if r.AuthorName != nil {
		u["author_name"] = helper.TrimPtr(r.AuthorName)
	}
	if r.PublicationType != nil {
		u["publication_type"] = helper.TrimPtr(r.PublicationType)
	}
	if r.FileURL != nil {
		u["file_url"] = helper.TrimPtr(r.FileURL)
	}
	return u
}

type PublicationDTO struct {
	shared.BaseDTO
	Abstract        *string             `json:"abstract,omitempty"`
	AuthorName      *string             `json:"authorName"`
	PublicationType *string             `json:"publicationType"`
	FileURL         *string             `json:"fileUrl"`
	CoverURL        *string             `json:"coverUrl"`
	Media           []mediaDTO.MediaDTO `json:"media,omitempty"`
}

func ToPublicationDTO(m *model.PublicationModel, media []mediaModel.MediaItemModel, detail bool) PublicationDTO {
	out := PublicationDTO{
		BaseDTO:         shared.ToBaseDTO(m.Base),
		AuthorName:      m.AuthorName,
		PublicationType: m.PublicationType,
		FileURL:         m.FileURL,
		CoverURL:        mediaService.CoverURL(media),
	}
	if detail {
		out.Abstract = m.Abstract
		out.Media = mediaDTO.ToMediaDTOs(media)
	}
	return out
}
