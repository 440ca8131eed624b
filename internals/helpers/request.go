package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IsMultipart mengecek Content-Type multipart/form-data.
func IsMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// ParseUUIDParam membaca :name sebagai UUID atau mengembalikan 400.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, FieldError(name, name+" harus berupa UUID")
	}
	return id, nil
}

// IDOrSlug memisahkan parameter :id menjadi UUID atau slug.
func IDOrSlug(raw string) (id *uuid.UUID, slug string) {
	raw = strings.TrimSpace(raw)
	if u, err := uuid.Parse(raw); err == nil {
		return &u, ""
	}
	return nil, strings.ToLower(raw)
}

// BodyParse membungkus BodyParser agar error parsing jadi 400 berbentuk standar.
func BodyParse(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return ValidationError("Body request tidak valid", map[string][]string{"body": {err.Error()}})
	}
	return nil
}

// TrimPtr: nil tetap nil, string kosong setelah trim jadi nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
