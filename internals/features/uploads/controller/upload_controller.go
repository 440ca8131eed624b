package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/uploads/service"
	helper "sekolahku_backend/internals/helpers"
)

type UploadController struct {
	Svc *service.Service
}

func NewUploadController(svc *service.Service) *UploadController {
	return &UploadController{Svc: svc}
}

// POST /api/admin/upload (multipart: file, folder, entityType?, entityId?, caption?, isMain?)
func (ctl *UploadController) Upload(c *fiber.Ctx) error {
	if !helper.IsMultipart(c) {
		return helper.FieldError("file", "Gunakan multipart/form-data")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.FieldError("file", "File wajib diunggah")
	}
	if ctl.Svc.MaxBytes > 0 && fh.Size > ctl.Svc.MaxBytes {
		return helper.FieldError("file", "Ukuran file melebihi batas")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.Upstream(err, "open multipart file")
	}
	defer f.Close()

	limit := ctl.Svc.MaxBytes
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return helper.Upstream(err, "read multipart file")
	}

	res, err := ctl.Svc.Upload(c.UserContext(), service.Input{
		Filename:   fh.Filename,
		Data:       data,
		Folder:     c.FormValue("folder"),
		EntityType: c.FormValue("entityType"),
		EntityID:   c.FormValue("entityId"),
		Caption:    helper.TrimPtr(optional(c.FormValue("caption"))),
		IsMain:     helper.ParseBool(c.FormValue("isMain")),
	})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "File berhasil diunggah", res)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
