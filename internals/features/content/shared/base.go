package shared

import (
	"strings"
	"time"

	"github.com/google/uuid"

	mediaDTO "sekolahku_backend/internals/features/media/dto"
)

// Base: kolom yang dimiliki semua tabel konten.
type Base struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string     `gorm:"column:slug;size:160;not null"`
	Title       string     `gorm:"column:title;size:255;not null"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Base) GetID() uuid.UUID { return b.ID }
func (b *Base) GetTitle() string { return b.Title }
func (b *Base) SetSlug(s string) { b.Slug = s }
func (b *Base) Published() bool  { return b.IsPublished }

// EnsurePublishedAt mengisi published_at saat konten pertama kali terbit.
func (b *Base) EnsurePublishedAt(now time.Time) {
	if b.IsPublished && b.PublishedAt == nil {
		b.PublishedAt = &now
	}
}

// BaseInput di-embed ke request create setiap entitas.
type BaseInput struct {
	Title       string                `json:"title" validate:"required,notblank,max=255"`
	Slug        *string               `json:"slug" validate:"omitempty,max=150"`
	IsPublished bool                  `json:"isPublished"`
	PublishedAt *time.Time            `json:"publishedAt"`
	Media       []mediaDTO.MediaInput `json:"media"`
}

func (in BaseInput) ToBase() Base {
	return Base{
		Title:       strings.TrimSpace(in.Title),
		IsPublished: in.IsPublished,
		PublishedAt: in.PublishedAt,
	}
}

// BasePatch di-embed ke request update; nil = tidak diubah.
type BasePatch struct {
	Title       *string                `json:"title" validate:"omitempty,notblank,max=255"`
	Slug        *string                `json:"slug" validate:"omitempty,max=150"`
	IsPublished *bool                  `json:"isPublished"`
	PublishedAt *time.Time             `json:"publishedAt"`
	Media       *[]mediaDTO.MediaInput `json:"media"`
}

func (p BasePatch) Apply(u map[string]any) {
	if p.Title != nil {
		u["title"] = strings.TrimSpace(*p.Title)
	}
	if p.IsPublished != nil {
		u["is_published"] = *p.IsPublished
	}
	if p.PublishedAt != nil {
		u["published_at"] = *p.PublishedAt
	}
}

// BaseDTO: bentuk camelCase kolom bersama.
type BaseDTO struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ToBaseDTO(b Base) BaseDTO {
	return BaseDTO{
		ID:          b.ID,
		Slug:        b.Slug,
		Title:       b.Title,
		IsPublished: b.IsPublished,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Payload: hasil decode body yang dipakai controller generik.
type Payload[M any] struct {
	Model    *M
	Updates  map[string]any
	Slug     *string
	Media    []mediaDTO.MediaInput
	HasMedia bool
}

// CreatePayload menyusun Payload create dari model + BaseInput.
func CreatePayload[M any](m *M, in BaseInput) Payload[M] {
	return Payload[M]{
		Model:    m,
		Slug:     in.Slug,
		Media:    in.Media,
		HasMedia: in.Media != nil,
	}
}

// UpdatePayload menyusun Payload update dari map kolom + BasePatch.
func UpdatePayload[M any](updates map[string]any, p BasePatch) Payload[M] {
	p.Apply(updates)
	out := Payload[M]{Updates: updates, Slug: p.Slug}
	if p.Media != nil {
		out.Media = *p.Media
		out.HasMedia = true
	}
	return out
}
