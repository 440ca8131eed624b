package dto

import (
	"time"

	"sekolahku_backend/internals/features/content/achievements/model"
	"sekolahku_backend/internals/features/content/shared"
	mediaDTO "sekolahku_backend/internals/features/media/dto"
	mediaModel "sekolahku_backend/internals/features/media/model"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
)

type CreateAchievementRequest struct {
	shared.BaseInput
	Description *string `json:"description"`
	StudentName *string `json:"studentName" validate:"omitempty,max=150"`
	Level       *string `json:"level" validate:"omitempty,oneof=sekolah kabupaten provinsi nasional internasional"`
	Rank        *string `json:"rank" validate:"omitempty,max=80"`
	Organizer   *string `json:"organizer" validate:"omitempty,max=150"`
	AchievedAt  *string `json:"achievedAt" validate:"omitempty,date"`
}

func (r CreateAchievementRequest) ToModel() *model.AchievementModel {
	return &model.AchievementModel{
		Base:        r.ToBase(),
		Description: r.Description,
		StudentName: helper.TrimPtr(r.StudentName),
		Level:       helper.TrimPtr(r.Level),
		Rank:        helper.TrimPtr(r.Rank),
		Organizer:   helper.TrimPtr(r.Organizer),
		AchievedAt:  parseDate(r.AchievedAt),
	}
}

type UpdateAchievementRequest struct {
	shared.BasePatch
	Description *string `json:"description"`
	StudentName *string `json:"studentName" validate:"omitempty,max=150"`
	Level       *string `json:"level" validate:"omitempty,oneof=sekolah kabupaten provinsi nasional internasional"`
	Rank        *string `json:"rank" validate:"omitempty,max=80"`
	Organizer   *string `json:"organizer" validate:"omitempty,max=150"`
	AchievedAt  *string `json:"achievedAt" validate:"omitempty,date"`
}

func (r UpdateAchievementRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.Description != nil {
		u["description"] = *r.Description
	}
	if r.StudentName != nil {
		u["student_name"] = helper.TrimPtr(r.StudentName)
	}
	if r.Level != nil {
		u["level"] = helper.TrimPtr(r.Level)
	}
	if r.Rank != nil {
		u["rank"] = helper.TrimPtr(r.Rank)
	}
	if r.Organizer != nil {
		u["organizer"] = helper.TrimPtr(r.Organizer)
	}
	if r.AchievedAt != nil {
		u["achieved_at"] = parseDate(r.AchievedAt)
	}
	return u
}

// parseDate: validator sudah menjamin format, string kosong = NULL.
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

type AchievementDTO struct {
	shared.BaseDTO
	Description *string             `json:"description,omitempty"`
	StudentName *string             `json:"studentName"`
	Level       *string             `json:"level"`
	Rank        *string             `json:"rank"`
	Organizer   *string             `json:"organizer"`
	AchievedAt  *string             `json:"achievedAt"`
	CoverURL    *string             `json:"coverUrl"`
	Media       []mediaDTO.MediaDTO `json:"media,omitempty"`
}

func ToAchievementDTO(m *model.AchievementModel, media []mediaModel.MediaItemModel, detail bool) AchievementDTO {
	out := AchievementDTO{
		BaseDTO:     shared.ToBaseDTO(m.Base),
		StudentName: m.StudentName,
		Level:       m.Level,
		Rank:        m.Rank,
		Organizer:   m.Organizer,
		CoverURL:    mediaService.CoverURL(media),
	}
	if m.AchievedAt != nil {
		d := m.AchievedAt.Format("2006-01-02")
		out.AchievedAt = &d
	}
	if detail {
		out.Description = m.Description
		out.Media = mediaDTO.ToMediaDTOs(media)
	}
	return out
}
