package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/storage"
)

type fakeFiles struct {
	entries  []storage.Entry
	err      error
	removed  []string
	prefixes []string
}

func (f *fakeFiles) List(_ context.Context, bucket, prefix string) ([]storage.Entry, error) {
	return f.entries, f.err
}

func (f *fakeFiles) Remove(_ context.Context, bucket string, paths []string) error {
	f.removed = append(f.removed, paths...)
	return f.err
}

func (f *fakeFiles) RemovePrefix(_ context.Context, bucket, prefix string) (int, error) {
	f.prefixes = append(f.prefixes, prefix)
	return 3, f.err
}

func newApp(f *fakeFiles) *fiber.App {
	ctl := NewStorageController(f)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/storage", ctl.List)
	app.Delete("/storage", ctl.Delete)
	return app
}

func call(t *testing.T, app *fiber.App, method, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestList(t *testing.T) {
	app := newApp(&fakeFiles{entries: []storage.Entry{{Name: "a.pdf", Path: "dokumen/a.pdf"}}})
	code, body := call(t, app, http.MethodGet, "/storage?bucket=file&prefix=/dokumen/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"prefix":"dokumen"`)
	assert.Contains(t, body, `"path":"dokumen/a.pdf"`)

	code, body = call(t, newApp(&fakeFiles{}), http.MethodGet, "/storage?bucket=file")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"items":[]`)

	code, body = call(t, newApp(&fakeFiles{err: errors.New("supabase down")}), http.MethodGet, "/storage")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body, "supabase down", "detail upstream tidak bocor")
}

func TestDelete(t *testing.T) {
	f := &fakeFiles{}
	app := newApp(f)

	code, body := call(t, app, http.MethodDelete, "/storage?bucket=file&path=/dokumen/a.pdf")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"removed":1`)
	assert.Equal(t, []string{"dokumen/a.pdf"}, f.removed)

	code, body = call(t, app, http.MethodDelete, "/storage?bucket=file&prefix=arsip/2024/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"removed":3`)
	assert.Equal(t, []string{"arsip/2024"}, f.prefixes)

	code, _ = call(t, app, http.MethodDelete, "/storage?bucket=file")
	assert.Equal(t, http.StatusBadRequest, code)
}
