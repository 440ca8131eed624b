package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/storage"
)

// Pruner: Browser yang juga bisa hapus satu folder penuh.
type Pruner interface {
	storage.Browser
	RemovePrefix(ctx context.Context, bucket, prefix string) (int, error)
}

type StorageController struct {
	Files Pruner
}

func NewStorageController(files Pruner) *StorageController {
	return &StorageController{Files: files}
}

// GET /api/admin/storage/supabase?bucket=&prefix=
func (ctl *StorageController) List(c *fiber.Ctx) error {
	bucket := strings.TrimSpace(c.Query("bucket"))
	prefix := strings.TrimSpace(c.Query("prefix"))
	entries, err := ctl.Files.List(c.UserContext(), bucket, prefix)
	if err != nil {
		return helper.Upstream(err, "supabase list")
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	return helper.JsonOK(c, "", fiber.Map{
		"bucket": bucket,
		"prefix": strings.Trim(prefix, "/"),
		"items":  entries,
	})
}

// DELETE /api/admin/storage/supabase?bucket=&path=  atau  ?bucket=&prefix=
func (ctl *StorageController) Delete(c *fiber.Ctx) error {
	bucket := strings.TrimSpace(c.Query("bucket"))
	p := strings.Trim(strings.TrimSpace(c.Query("path")), "/")
	prefix := strings.Trim(strings.TrimSpace(c.Query("prefix")), "/")

	switch {
	case p != "":
		if err := ctl.Files.Remove(c.UserContext(), bucket, []string{p}); err != nil {
			return helper.Upstream(err, "supabase remove")
		}
		return helper.JsonDeleted(c, "File berhasil dihapus", fiber.Map{"removed": 1, "path": p})
	case prefix != "":
		n, err := ctl.Files.RemovePrefix(c.UserContext(), bucket, prefix)
		if err != nil {
			return helper.Upstream(err, "supabase remove prefix")
		}
		return helper.JsonDeleted(c, "Folder berhasil dikosongkan", fiber.Map{"removed": n, "prefix": prefix})
	}
	return helper.FieldError("path", "path atau prefix wajib diisi")
}
