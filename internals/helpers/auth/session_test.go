package helper

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rahasia-test"

func TestIssueAndParseSession(t *testing.T) {
	uid := uuid.New()
	tok, issued, err := IssueSession(testSecret, time.Hour, uid, "admin", "operator")
	require.NoError(t, err)

	s, err := ParseSession(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, uid, s.UserID)
	assert.Equal(t, "admin", s.Role)
	assert.Equal(t, "operator", s.Username)
	assert.Equal(t, issued.JTI, s.JTI)
	assert.WithinDuration(t, issued.ExpiresAt, s.ExpiresAt, time.Second)
}

func TestParseSessionRejects(t *testing.T) {
	tok, _, err := IssueSession(testSecret, time.Hour, uuid.New(), "admin", "a")
	require.NoError(t, err)

	_, err = ParseSession("secret-lain", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := IssueSession(testSecret, -time.Minute, uuid.New(), "admin", "a")
	require.NoError(t, err)
	_, err = ParseSession(testSecret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSession(testSecret, "bukan.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueSessionNeedsSecret(t *testing.T) {
	_, _, err := IssueSession("", time.Hour, uuid.New(), "admin", "a")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		tok, err := ExtractToken(c, "session_token")
		if err != nil {
			return c.SendString("none")
		}
		return c.SendString(tok)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "session_token=dari-cookie")
	req.Header.Set("Authorization", "Bearer dari-header")
	assert.Equal(t, "dari-cookie", body(t, app, req))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer dari-header")
	assert.Equal(t, "dari-header", body(t, app, req))

	req = httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "none", body(t, app, req))
}

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	require.NoError(t, b.Revoke(ctx, "jti-lama", time.Now().Add(-time.Minute)))

	revoked, _ := b.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)
	revoked, _ = b.IsRevoked(ctx, "jti-lama")
	assert.False(t, revoked, "entri kedaluwarsa tidak dihitung")
	revoked, _ = b.IsRevoked(ctx, "jti-asing")
	assert.False(t, revoked)
}
