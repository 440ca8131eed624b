//go:build integration

package route_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/features/content/news/route"
	"sekolahku_backend/internals/features/content/shared"
	mediaService "sekolahku_backend/internals/features/media/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

const secret = "rahasia-test"

var testDB *gorm.DB

func TestMain(m *testing.M) {
	testDB = dbtest.Open()
	os.Exit(m.Run())
}

type newsView struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"isPublished"`
	Media       []struct {
		URL    string `json:"url"`
		IsMain bool   `json:"isMain"`
	} `json:"media"`
	CoverURL *string `json:"coverUrl"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	dbtest.Truncate(t, testDB, "media_items", "news")

	opt := authMiddleware.Options{Secret: secret, CookieName: "session_token", Blacklist: helperAuth.NewMemoryBlacklist()}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	route.NewsRoutes(app.Group("/api"), testDB, mediaService.New(testDB), shared.Guards{
		Optional: authMiddleware.OptionalSession(opt),
		Require:  authMiddleware.RequireSession(opt),
	})
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, _, err := helperAuth.IssueSession(secret, time.Hour, uuid.New(), constants.RoleAdmin, "operator")
	require.NoError(t, err)
	return tok
}

func send(t *testing.T, app *fiber.App, method, target, tok, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func decodeData(t *testing.T, b []byte) newsView {
	t.Helper()
	var env struct {
		Data newsView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &env), string(b))
	return env.Data
}

func TestWriteRequiresAdmin(t *testing.T) {
	app := newApp(t)
	code, _ := send(t, app, http.MethodPost, "/api/news", "", `{"title":"Tanpa login"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSlugGeneratedUniqueAndStable(t *testing.T) {
	app := newApp(t)
	tok := adminToken(t)

	code, b := send(t, app, http.MethodPost, "/api/news", tok, `{"title":"Juara Olimpiade Sains","isPublished":true}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	first := decodeData(t, b)
	assert.Equal(t, "juara-olimpiade-sains", first.Slug)

	code, b = send(t, app, http.MethodPost, "/api/news", tok, `{"title":"Juara Olimpiade Sains","isPublished":true}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	second := decodeData(t, b)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "juara-olimpiade-sains-"))

	// ganti judul tidak mengubah slug
	code, b = send(t, app, http.MethodPut, "/api/news/"+first.ID.String(), tok, `{"title":"Juara Umum Olimpiade"}`)
	require.Equal(t, http.StatusOK, code, string(b))
	upd := decodeData(t, b)
	assert.Equal(t, "Juara Umum Olimpiade", upd.Title)
	assert.Equal(t, first.Slug, upd.Slug)

	// slug bisa dibaca case-insensitive
	code, _ = send(t, app, http.MethodGet, "/api/news/JUARA-OLIMPIADE-SAINS", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	app := newApp(t)
	tok := adminToken(t)

	code, b := send(t, app, http.MethodPost, "/api/news", tok, `{"title":"Draft Rapat Komite"}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	draft := decodeData(t, b)
	require.False(t, draft.IsPublished)

	code, _ = send(t, app, http.MethodGet, "/api/news/"+draft.Slug, "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, b = send(t, app, http.MethodGet, "/api/news", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(b), `"total":0`)

	// admin tanpa includeDrafts tetap melihat tampilan publik
	_, b = send(t, app, http.MethodGet, "/api/news", tok, "")
	assert.Contains(t, string(b), `"total":0`)

	_, b = send(t, app, http.MethodGet, "/api/news?includeDrafts=true", tok, "")
	assert.Contains(t, string(b), `"total":1`)

	code, _ = send(t, app, http.MethodGet, "/api/news/"+draft.Slug+"?includeDrafts=true", tok, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestMediaReplaceAndDelete(t *testing.T) {
	app := newApp(t)
	tok := adminToken(t)

	code, b := send(t, app, http.MethodPost, "/api/news", tok, `{
		"title":"Pentas Seni","isPublished":true,
		"media":[
			{"url":"https://cdn.example/a.webp","type":"image"},
			{"url":"https://cdn.example/b.webp","type":"image","isMain":true}
		]}`)
	require.Equal(t, http.StatusCreated, code, string(b))
	created := decodeData(t, b)
	require.Len(t, created.Media, 2)
	require.NotNil(t, created.CoverURL)
	assert.Equal(t, "https://cdn.example/b.webp", *created.CoverURL)

	code, b = send(t, app, http.MethodPut, "/api/news/"+created.ID.String(), tok,
		`{"media":[{"url":"https://cdn.example/c.webp","type":"image"}]}`)
	require.Equal(t, http.StatusOK, code, string(b))
	upd := decodeData(t, b)
	require.Len(t, upd.Media, 1)
	assert.Equal(t, "https://cdn.example/c.webp", upd.Media[0].URL)

	// dua foto utama: hanya yang pertama dipertahankan
	code, b = send(t, app, http.MethodPut, "/api/news/"+created.ID.String(), tok, `{"media":[
		{"url":"https://cdn.example/d.webp","type":"image","isMain":true},
		{"url":"https://cdn.example/e.webp","type":"image","isMain":true}]}`)
	require.Equal(t, http.StatusOK, code, string(b))
	upd = decodeData(t, b)
	require.Len(t, upd.Media, 2)
	assert.True(t, upd.Media[0].IsMain)
	assert.False(t, upd.Media[1].IsMain)

	code, _ = send(t, app, http.MethodPut, "/api/news/"+created.ID.String(), tok,
		`{"media":[{"url":"bukan-url","type":"image"}]}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = send(t, app, http.MethodDelete, "/api/news/"+created.ID.String(), tok, "")
	assert.Equal(t, http.StatusOK, code)

	var n int64
	require.NoError(t, testDB.Table("media_items").Where("entity_id = ?", created.ID).Count(&n).Error)
	assert.Zero(t, n)

	code, _ = send(t, app, http.MethodGet, "/api/news/"+created.ID.String(), "", "")
	assert.Equal(t, http.StatusNotFound, code)
}
