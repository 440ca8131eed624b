package details

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
	ppdbService "sekolahku_backend/internals/features/ppdb/service"
	uploadService "sekolahku_backend/internals/features/uploads/service"
	userRepo "sekolahku_backend/internals/features/users/users/repository"
	userService "sekolahku_backend/internals/features/users/users/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/storage"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

const secret = "route-secret"

// newApp memasang route PPDB dan admin persis seperti SetupRoutes; tidak ada yang menyentuh DB
// selama gate menolak request.
func newApp(t *testing.T) *fiber.App {
	t.Helper()
	opt := authMiddleware.Options{Secret: secret, CookieName: "session_token", Blacklist: helperAuth.NewMemoryBlacklist()}
	requireSession := authMiddleware.RequireSession(opt)

	sb, err := storage.NewSupabaseStorage("http://127.0.0.1:1", "service-key", "files")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	api := app.Group("/api")
	PPDBRoutes(api, ppdbService.New(nil, nil, "Sekolahku"), "", requireSession)
	admin := api.Group("/admin", requireSession)
	AdminRoutes(admin, uploadService.New(nil, nil, nil, 1<<20), userService.New(userRepo.NewMemory()), sb)
	return app
}

func sessionToken(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := helperAuth.IssueSession(secret, time.Hour, uuid.New(), role, "u-"+role)
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, method, path, tok string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Cookie", "session_token="+tok)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAdminRoleGetsForbiddenOnSuperadminRoutes(t *testing.T) {
	app := newApp(t)
	tok := sessionToken(t, constants.RoleAdmin)

	cases := []struct{ method, path string }{
		{fiber.MethodGet, "/api/admin/users"},
		{fiber.MethodPost, "/api/admin/users"},
		{fiber.MethodPut, "/api/admin/users/" + uuid.NewString()},
		{fiber.MethodDelete, "/api/admin/users/" + uuid.NewString()},
		{fiber.MethodGet, "/api/admin/storage/supabase?bucket=files&prefix="},
		{fiber.MethodDelete, "/api/admin/storage/supabase?bucket=files&path=a.png"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.Equal(t, fiber.StatusForbidden, call(t, app, tc.method, tc.path, tok))
		})
	}
}

func TestUnknownRoleForbiddenEverywhereAdmin(t *testing.T) {
	app := newApp(t)
	tok := sessionToken(t, "guru")

	for _, path := range []string{"/api/admin/users", "/api/admin/storage/supabase", "/api/ppdb/"} {
		assert.Equal(t, fiber.StatusForbidden, call(t, app, fiber.MethodGet, path, tok), path)
	}
	assert.Equal(t, fiber.StatusForbidden, call(t, app, fiber.MethodPost, "/api/admin/upload", tok))
	assert.Equal(t, fiber.StatusForbidden, call(t, app, fiber.MethodPut, "/api/ppdb/"+uuid.NewString(), tok))
}

func TestPPDBAdminRoutesNeedSession(t *testing.T) {
	app := newApp(t)

	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, fiber.MethodPut, "/api/ppdb/"+uuid.NewString(), ""))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, fiber.MethodGet, "/api/ppdb/", ""))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, fiber.MethodGet, "/api/ppdb/export", ""))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, fiber.MethodGet, "/api/admin/users", ""))
}

func TestSuperadminPassesUserGate(t *testing.T) {
	app := newApp(t)
	tok := sessionToken(t, constants.RoleSuperadmin)

	assert.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/api/admin/users", tok))
}
