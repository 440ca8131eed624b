package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// LocSession: key c.Locals tempat middleware menyimpan Session.
const LocSession = "session"

var (
	ErrNoToken      = errors.New("session token tidak ditemukan")
	ErrInvalidToken = errors.New("session token tidak valid")
)

// Session adalah isi cookie sesi admin: {id, role} plus metadata token.
type Session struct {
	UserID    uuid.UUID
	Role      string
	Username  string
	JTI       string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueSession menandatangani token HS256 baru.
func IssueSession(secret string, ttl time.Duration, userID uuid.UUID, role, username string) (string, Session, error) {
	if secret == "" {
		return "", Session{}, errors.New("JWT secret kosong")
	}
	now := time.Now()
	s := Session{
		UserID:    userID,
		Role:      role,
		Username:  username,
		JTI:       uuid.NewString(),
		ExpiresAt: now.Add(ttl),
	}
	claims := sessionClaims{
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        s.JTI,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return tok, s, nil
}

// ParseSession memverifikasi tanda tangan + exp dan mengembalikan Session.
func ParseSession(secret, token string) (Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return Session{}, ErrInvalidToken
	}
	return Session{
		UserID:    uid,
		Role:      claims.Role,
		Username:  claims.Username,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ExtractToken: cookie dulu, lalu Authorization: Bearer.
func ExtractToken(c *fiber.Ctx, cookieName string) (string, error) {
	if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
		return v, nil
	}
	const p = "Bearer "
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > len(p) && strings.EqualFold(h[:len(p)], p) {
		return strings.TrimSpace(h[len(p):]), nil
	}
	return "", ErrNoToken
}

func SetSessionCookie(c *fiber.Ctx, name, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

func ClearSessionCookie(c *fiber.Ctx, name string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
	})
}

// SameSite=None hanya boleh bersama Secure; di lokal pakai Lax.
func sameSite(secure bool) string {
	if secure {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}

// SessionFrom mengambil Session yang sudah diverifikasi middleware.
func SessionFrom(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(LocSession).(Session)
	return s, ok
}
