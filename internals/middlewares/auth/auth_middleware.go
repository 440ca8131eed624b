package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type Options struct {
	Secret     string
	CookieName string
	Blacklist  helperAuth.Blacklist
}

// RequireSession: tanpa sesi valid → 401. Session disimpan di c.Locals(LocSession).
func RequireSession(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := resolveSession(c, opt)
		if err != nil {
			return err
		}
		c.Locals(helperAuth.LocSession, s)
		return c.Next()
	}
}

// OptionalSession: sesi dipasang bila ada & valid; token rusak diabaikan (route publik).
func OptionalSession(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s, err := resolveSession(c, opt); err == nil {
			c.Locals(helperAuth.LocSession, s)
		}
		return c.Next()
	}
}

func resolveSession(c *fiber.Ctx, opt Options) (helperAuth.Session, error) {
	token, err := helperAuth.ExtractToken(c, opt.CookieName)
	if err != nil {
		return helperAuth.Session{}, helper.Unauthorized("Silakan login terlebih dahulu")
	}
	s, err := helperAuth.ParseSession(opt.Secret, token)
	if err != nil {
		return helperAuth.Session{}, helper.Unauthorized("Sesi tidak valid atau sudah berakhir")
	}
	if opt.Blacklist != nil {
		revoked, err := opt.Blacklist.IsRevoked(c.UserContext(), s.JTI)
		if err != nil {
			zap.L().Error("cek blacklist gagal", zap.Error(err))
			return helperAuth.Session{}, helper.Upstream(err, "cek blacklist sesi")
		}
		if revoked {
			return helperAuth.Session{}, helper.Unauthorized("Sesi sudah logout")
		}
	}
	return s, nil
}

// IsUnauthorized dipakai handler yang perlu membedakan "tidak login" dari error lain.
func IsUnauthorized(err error) bool {
	var ae *helper.AppError
	return errors.As(err, &ae) && ae.Kind == helper.KindUnauthorized
}
