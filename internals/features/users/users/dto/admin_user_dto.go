package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/users/users/model"
	helper "sekolahku_backend/internals/helpers"
)

type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=50,excludesall= "`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	Email     *string `json:"email" validate:"omitempty,email,max=150"`
	Role      string  `json:"role" validate:"required,oneof=admin superadmin"`
	FullName  *string `json:"fullName" validate:"omitempty,max=150"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	IsActive  *bool   `json:"isActive"`
}

func (r *CreateUserRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Email = lowerPtr(helper.TrimPtr(r.Email))
	r.FullName = helper.TrimPtr(r.FullName)
	r.Phone = helper.TrimPtr(r.Phone)
	r.AvatarURL = helper.TrimPtr(r.AvatarURL)
}

// UpdateUserRequest: hanya field yang dikirim yang diubah.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=150"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin superadmin"`
	FullName  *string `json:"fullName" validate:"omitempty,max=150"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	IsActive  *bool   `json:"isActive"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Role != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

// Updates: password di-hash oleh service, tidak lewat sini.
func (r UpdateUserRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.Email != nil {
		u["email"] = helper.TrimPtr(r.Email)
	}
	if r.Role != nil {
		u["role"] = *r.Role
	}
	if r.FullName != nil {
		u["full_name"] = helper.TrimPtr(r.FullName)
	}
	if r.Phone != nil {
		u["phone"] = helper.TrimPtr(r.Phone)
	}
	if r.AvatarURL != nil {
		u["avatar_url"] = helper.TrimPtr(r.AvatarURL)
	}
	if r.IsActive != nil {
		u["is_active"] = *r.IsActive
	}
	return u
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       *string    `json:"email"`
	Role        string     `json:"role"`
	FullName    *string    `json:"fullName"`
	Phone       *string    `json:"phone"`
	AvatarURL   *string    `json:"avatarUrl"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ToUserDTO(m *model.AdminUserModel) UserDTO {
	return UserDTO{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		Role:        m.Role,
		FullName:    m.FullName,
		Phone:       m.Phone,
		AvatarURL:   m.AvatarURL,
		IsActive:    m.IsActive,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserDTOs(rows []model.AdminUserModel) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToUserDTO(&rows[i]))
	}
	return out
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	return &v
}
