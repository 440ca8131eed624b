package dto

import (
	"strings"

	"github.com/lib/pq"

	"sekolahku_backend/internals/features/content/news/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaDTO "sekolahku_backend/internals/features/media/dto"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

type CreateNewsRequest struct {
	shared.BaseInput
	Excerpt    *string  `json:"excerpt" validate:"omitempty,max=500"`
	Content    *string  `json:"content"`
	Category   *string  `json:"category" validate:"omitempty,max=80"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,max=40"`
	AuthorName *string  `json:"authorName" validate:"omitempty,max=150"`
}

func (r CreateNewsRequest) ToModel() *model.NewsModel {
	return &model.NewsModel{
		Base:       r.ToBase(),
		Excerpt:    helper.TrimPtr(r.Excerpt),
		Content:    r.Content,
		Category:   helper.TrimPtr(r.Category),
		Tags:       normalizeTags(r.Tags),
		AuthorName: helper.TrimPtr(r.AuthorName),
	}
}

type UpdateNewsRequest struct {
	shared.BasePatch
	Excerpt    *string   `json:"excerpt" validate:"omitempty,max=500"`
	Content    *string   `json:"content"`
	Category   *string   `json:"category" validate:"omitempty,max=80"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=20,dive,max=40"`
	AuthorName *string   `json:"authorName" validate:"omitempty,max=150"`
}

// Updates: hanya kolom yang dikirim klien.
func (r UpdateNewsRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.Excerpt != nil {
		u["excerpt"] = helper.TrimPtr(r.Excerpt)
	}
	if r.Content != nil {
		u["content"] = *r.Content
	}
	if r.Category != nil {
		u["category"] = helper.TrimPtr(r.Category)
	}
	if r.Tags != nil {
		u["tags"] = normalizeTags(*r.Tags)
	}
	if r.AuthorName != nil {
		u["author_name"] = helper.TrimPtr(r.AuthorName)
	}
	return u
}

func normalizeTags(in []string) pq.StringArray {
	out := pq.StringArray{}
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

type NewsDTO struct {
	shared.BaseDTO
	Excerpt    *string             `json:"excerpt"`
	Content    *string             `json:"content,omitempty"`
	Category   *string             `json:"category"`
	Tags       []string            `json:"tags"`
	AuthorName *string             `json:"authorName"`
	ViewCount  int64               `json:"viewCount"`
	CoverURL   *string             `json:"coverUrl"`
	Media      []mediaDTO.MediaDTO `json:"media,omitempty"`
}

// ToNewsDTO: list tanpa isi konten & media, detail lengkap.
func ToNewsDTO(m *model.NewsModel, media []mediaModel.MediaItemModel, detail bool) NewsDTO {
	out := NewsDTO{
		BaseDTO:    shared.ToBaseDTO(m.Base),
		Excerpt:    m.Excerpt,
		Category:   m.Category,
		Tags:       []string(m.Tags),
		AuthorName: m.AuthorName,
		ViewCount:  m.ViewCount,
		CoverURL:   mediaService.CoverURL(media),
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if detail {
		out.Content = m.Content
		out.Media = mediaDTO.ToMediaDTOs(media)
	}
	return out
}
