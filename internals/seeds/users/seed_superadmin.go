package users

import (
	"context"

	"go.uber.org/zap"

	"sekolahku_backend/internals/configs"
	userService "sekolahku_backend/internals/features/users/users/service"
)

// SeedSuperadmin membuat akun superadmin pertama dari env SUPERADMIN_*.
// Tidak melakukan apa pun bila env kosong atau username sudah ada.
func SeedSuperadmin(ctx context.Context, svc *userService.Service, c configs.AuthConfig) bool {
	if c.SeedUsername == "" || c.SeedPassword == "" {
		zap.L().Debug("seed superadmin dilewati (SUPERADMIN_USERNAME/PASSWORD kosong)")
		return false
	}
	created, err := svc.EnsureSuperadmin(ctx, c.SeedUsername, c.SeedPassword, c.SeedEmail)
	if err != nil {
		zap.L().Error("❌ gagal seed superadmin", zap.String("username", c.SeedUsername), zap.Error(err))
		return false
	}
	if !created {
		zap.L().Info("ℹ️ superadmin sudah ada, lewati", zap.String("username", c.SeedUsername))
	}
	return created
}
