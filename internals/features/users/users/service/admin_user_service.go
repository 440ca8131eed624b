package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/users/dto"
	"sekolahku_backend/internals/features/users/users/model"
	"sekolahku_backend/internals/features/users/users/repository"
	helper "sekolahku_backend/internals/helpers"
)

const (
	userNotFound  = "User tidak ditemukan"
	userConflict  = "Username atau email sudah dipakai"
	lastSuperMsg  = "Superadmin terakhir tidak boleh dihapus atau diturunkan"
	selfDeleteMsg = "Tidak bisa menghapus akun sendiri"
)

type Service struct {
	Repo repository.Repository
	Cost int
}

func New(repo repository.Repository) *Service {
	return &Service{Repo: repo, Cost: bcrypt.DefaultCost}
}

func (s *Service) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), s.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *Service) List(ctx context.Context, q string, p helper.Paging) ([]model.AdminUserModel, int64, error) {
	rows, total, err := s.Repo.List(ctx, q, p)
	if err != nil {
		return nil, 0, helper.Upstream(err, "list admin users")
	}
	return rows, total, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateUserRequest) (*model.AdminUserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, helper.Upstream(err, "hash password")
	}
	u := &model.AdminUserModel{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AvatarURL:    req.AvatarURL,
		IsActive:     true,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, helper.DBError(err, "", userConflict)
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.AdminUserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	updates := req.Updates()
	if req.Password != nil {
		hash, err := s.HashPassword(*req.Password)
		if err != nil {
			return nil, helper.Upstream(err, "hash password")
		}
		updates["password_hash"] = hash
	}
	u, err := s.Repo.Update(ctx, id, updates)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return u, nil
}

// Delete: superadmin tidak bisa menghapus dirinya sendiri maupun superadmin terakhir.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return helper.ValidationError(selfDeleteMsg, nil)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapUserErr(err)
	}
	return nil
}

// ResetPassword dipakai CLI.
func (s *Service) ResetPassword(ctx context.Context, username, password string) error {
	if len(password) < 8 {
		return helper.FieldError("password", "password minimal 8 karakter")
	}
	u, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return helper.DBError(err, userNotFound, "")
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return helper.Upstream(err, "hash password")
	}
	_, err = s.Repo.Update(ctx, u.ID, map[string]any{"password_hash": hash})
	return mapUserErr(err)
}

// EnsureSuperadmin membuat superadmin awal bila username belum ada (idempoten).
func (s *Service) EnsureSuperadmin(ctx context.Context, username, password, email string) (created bool, err error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return false, nil
	}
	if _, err := s.Repo.FindByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, helper.Upstream(err, "find seed user")
	}
	req := dto.CreateUserRequest{Username: username, Password: password, Role: constants.RoleSuperadmin}
	if email != "" {
		req.Email = &email
	}
	if _, err := s.Create(ctx, req); err != nil {
		return false, err
	}
	zap.L().Info("superadmin awal dibuat", zap.String("username", username))
	return true, nil
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrLastSuperadmin):
		return helper.ValidationError(lastSuperMsg, nil)
	}
	var ae *helper.AppError
	if errors.As(err, &ae) {
		return ae
	}
	return helper.DBError(err, userNotFound, userConflict)
}
