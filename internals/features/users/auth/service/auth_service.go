package service

import (
	"context"
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/users/model"
	"sekolahku_backend/internals/features/users/users/repository"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const badCredentials = "Username atau password salah"

// dipakai saat username tidak ada supaya waktu respons tetap sama
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("sekolahku-dummy-password"), bcrypt.DefaultCost)

// GoogleVerifier memverifikasi ID token Google dan mengembalikan email-nya.
type GoogleVerifier interface {
	VerifyEmail(idToken string) (string, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) VerifyEmail(idToken string) (string, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return "", err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", err
	}
	return claimSet.Email, nil
}

type Service struct {
	Users     repository.Repository
	Blacklist helperAuth.Blacklist
	Secret    string
	TTL       time.Duration
	Google    GoogleVerifier
}

func New(users repository.Repository, bl helperAuth.Blacklist, secret string, ttl time.Duration, google GoogleVerifier) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{Users: users, Blacklist: bl, Secret: secret, TTL: ttl, Google: google}
}

type LoginResult struct {
	Token   string
	Session helperAuth.Session
	User    *model.AdminUserModel
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.Users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Upstream(err, "find admin user")
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, helper.Unauthorized(badCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, helper.Unauthorized(badCredentials)
	}
	return s.issue(ctx, u)
}

// LoginGoogle: hanya email yang sudah terdaftar sebagai admin yang boleh masuk.
func (s *Service) LoginGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.Google == nil {
		return nil, helper.NotFound("Login Google belum dikonfigurasi")
	}
	email, err := s.Google.VerifyEmail(idToken)
	if err != nil {
		return nil, helper.Unauthorized("Token Google tidak valid")
	}
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Forbidden("Email ini tidak terdaftar sebagai admin")
		}
		return nil, helper.Upstream(err, "find admin by email")
	}
	return s.issue(ctx, u)
}

func (s *Service) issue(ctx context.Context, u *model.AdminUserModel) (*LoginResult, error) {
	if !u.IsActive {
		return nil, helper.Forbidden("Akun Anda telah dinonaktifkan. Hubungi superadmin.")
	}
	token, sess, err := helperAuth.IssueSession(s.Secret, s.TTL, u.ID, u.Role, u.Username)
	if err != nil {
		return nil, helper.Upstream(err, "issue session")
	}
	now := time.Now()
	if err := s.Users.TouchLogin(ctx, u.ID, now); err != nil {
		zap.L().Warn("gagal update last_login_at", zap.String("user_id", u.ID.String()), zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}
	return &LoginResult{Token: token, Session: sess, User: u}, nil
}

// Logout mencabut jti sampai token kedaluwarsa.
func (s *Service) Logout(ctx context.Context, sess helperAuth.Session) error {
	if s.Blacklist == nil || sess.JTI == "" {
		return nil
	}
	if err := s.Blacklist.Revoke(ctx, sess.JTI, sess.ExpiresAt); err != nil {
		return helper.Upstream(err, "revoke session")
	}
	return nil
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*model.AdminUserModel, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, helper.DBError(err, "User tidak ditemukan", "")
	}
	return u, nil
}
