package seeds

import (
	"context"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	userService "sekolahku_backend/internals/features/users/users/service"
	"sekolahku_backend/internals/seeds/content"
	"sekolahku_backend/internals/seeds/users"
)

// SeedSuperadmin dipanggil setiap boot; idempoten.
func SeedSuperadmin(ctx context.Context, svc *userService.Service, c configs.AuthConfig) bool {
	return users.SeedSuperadmin(ctx, svc, c)
}

// RunAllSeeds: superadmin lalu konten contoh (bila contentFile diisi).
func RunAllSeeds(ctx context.Context, db *gorm.DB, svc *userService.Service, c *configs.Config, contentFile string) error {
	users.SeedSuperadmin(ctx, svc, c.Auth)

	if contentFile != "" {
		if _, err := content.SeedFromJSON(ctx, db, contentFile); err != nil {
			return err
		}
	}
	return nil
}
