package controller

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/auth/service"
	"sekolahku_backend/internals/features/users/users/dto"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc          *service.Service
	CookieName   string
	CookieSecure bool
}

func NewAuthController(svc *service.Service, cookieName string, secure bool) *AuthController {
	return &AuthController{Svc: svc, CookieName: cookieName, CookieSecure: secure}
}

func (ac *AuthController) respond(c *fiber.Ctx, res *service.LoginResult) error {
	helperAuth.SetSessionCookie(c, ac.CookieName, res.Token, res.Session.ExpiresAt, ac.CookieSecure)
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user":      dto.ToUserDTO(res.User),
		"token":     res.Token,
		"expiresAt": res.Session.ExpiresAt,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	res, err := ac.Svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return ac.respond(c, res)
}

// POST /api/auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	res, err := ac.Svc.LoginGoogle(c.UserContext(), req.IDToken)
	if err != nil {
		return err
	}
	return ac.respond(c, res)
}

// POST /api/auth/logout (butuh sesi)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if s, ok := helperAuth.SessionFrom(c); ok {
		if err := ac.Svc.Logout(c.UserContext(), s); err != nil {
			return err
		}
	}
	helperAuth.ClearSessionCookie(c, ac.CookieName, ac.CookieSecure)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	s, ok := helperAuth.SessionFrom(c)
	if !ok {
		return helper.Unauthorized("Silakan login terlebih dahulu")
	}
	u, err := ac.Svc.Me(c.UserContext(), s.UserID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", fiber.Map{
		"user":         dto.ToUserDTO(u),
		"capabilities": capabilitiesOf(u.Role),
	})
}

func capabilitiesOf(role string) []string {
	caps := constants.RoleCapabilities[role]
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		out = append(out, string(c))
	}
	return out
}
