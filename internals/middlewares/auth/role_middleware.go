package auth

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// RequireCapability: dipasang setelah RequireSession. Role di luar tabel → 403.
func RequireCapability(capability constants.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := helperAuth.SessionFrom(c)
		if !ok {
			return helper.Unauthorized("Silakan login terlebih dahulu")
		}
		if !constants.HasCapability(s.Role, capability) {
			return helper.Forbidden(constants.CapabilityError(capability))
		}
		return c.Next()
	}
}

// RequireRole: cek role secara eksplisit (allow-list).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := helperAuth.SessionFrom(c)
		if !ok {
			return helper.Unauthorized("Silakan login terlebih dahulu")
		}
		for _, r := range roles {
			if s.Role == r {
				return c.Next()
			}
		}
		return helper.Forbidden("Akses ditolak untuk role Anda")
	}
}
