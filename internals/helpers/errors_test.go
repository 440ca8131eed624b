package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func runError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, e := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, e)
	body, _ := io.ReadAll(resp.Body)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestFromErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", FieldError("nik", "nik wajib diisi"), 400, "VALIDATION_ERROR", "nik wajib diisi"},
		{"not found", NotFound("Berita tidak ditemukan"), 404, "NOT_FOUND", "Berita tidak ditemukan"},
		{"unauthorized", Unauthorized("Sesi tidak valid"), 401, "UNAUTHORIZED", "Sesi tidak valid"},
		{"forbidden", Forbidden("Akses ditolak"), 403, "FORBIDDEN", "Akses ditolak"},
		{"conflict", Conflict("NIK atau NISN sudah terdaftar"), 409, "CONFLICT", "NIK atau NISN sudah terdaftar"},
		{"upstream menyembunyikan detail", Upstream(errors.New("dial tcp: refused"), "list news"), 500, "INTERNAL_ERROR", genericServerMessage},
		{"error asing jadi 500", errors.New("boom"), 500, "INTERNAL_ERROR", genericServerMessage},
		{"fiber error dihormati", fiber.NewError(fiber.StatusTooManyRequests, "pelan-pelan"), 429, "TOO_MANY_REQUESTS", "pelan-pelan"},
		{"record not found mentah", gorm.ErrRecordNotFound, 404, "NOT_FOUND", "Data tidak ditemukan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.ErrorCode)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	_, body := runError(t, FieldError("nisn", "nisn harus 10 karakter"))
	assert.Equal(t, []string{"nisn harus 10 karakter"}, body.Errors["nisn"])
}

func TestDBError(t *testing.T) {
	assert.Nil(t, DBError(nil, "x", "y"))

	var ae *AppError
	require.ErrorAs(t, DBError(gorm.ErrRecordNotFound, "tidak ada", ""), &ae)
	assert.Equal(t, KindNotFound, ae.Kind)
	assert.Equal(t, "tidak ada", ae.Message)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_ppdb_nik"}
	require.ErrorAs(t, DBError(dup, "", "sudah ada"), &ae)
	assert.Equal(t, KindConflict, ae.Kind)
	assert.Equal(t, 409, ae.Status())

	require.ErrorAs(t, DBError(errors.New("timeout"), "", ""), &ae)
	assert.Equal(t, KindUpstream, ae.Kind)
}
