package controller

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/users/users/dto"
	"sekolahku_backend/internals/features/users/users/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type UserController struct {
	Svc *service.Service
}

func NewUserController(svc *service.Service) *UserController {
	return &UserController{Svc: svc}
}

// GET /api/admin/users?q=&page=&pageSize=
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.AdminOpts)
	rows, total, err := uc.Svc.List(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, dto.ToUserDTOs(rows), total, p)
}

// POST /api/admin/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	u, err := uc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "User berhasil dibuat", dto.ToUserDTO(u))
}

// PUT /api/admin/users/:id
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	u, err := uc.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.ToUserDTO(u))
}

// DELETE /api/admin/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	s, ok := helperAuth.SessionFrom(c)
	if !ok {
		return helper.Unauthorized("Silakan login terlebih dahulu")
	}
	if err := uc.Svc.Delete(c.UserContext(), s.UserID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}
