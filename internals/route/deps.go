package routes

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	mediaService "sekolahku_backend/internals/features/media/service"
	ppdbNotifier "sekolahku_backend/internals/features/ppdb/notifier"
	ppdbRepo "sekolahku_backend/internals/features/ppdb/repository"
	ppdbService "sekolahku_backend/internals/features/ppdb/service"
	uploadService "sekolahku_backend/internals/features/uploads/service"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userRepo "sekolahku_backend/internals/features/users/users/repository"
	userService "sekolahku_backend/internals/features/users/users/service"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/storage"
)

// Deps: semua service yang dirakit sekali saat boot dan dibagikan ke route.
type Deps struct {
	Cfg       *configs.Config
	DB        *gorm.DB
	Blacklist helperAuth.Blacklist
	Media     *mediaService.Service
	Supabase  *storage.SupabaseStorage
	Uploads   *uploadService.Service
	PPDBRepo  ppdbRepo.Repository
	PPDB      *ppdbService.Service
	Users     *userService.Service
	Auth      *authService.Service
}

// BuildDeps: integrasi opsional (OSS, Supabase, Telegram, Sheets, SendGrid, push, Midtrans)
// yang belum dikonfigurasi hanya dicatat lalu dilewati.
func BuildDeps(ctx context.Context, cfg *configs.Config, db *gorm.DB) (*Deps, error) {
	d := &Deps{Cfg: cfg, DB: db}

	bl, err := helperAuth.NewBlacklistFromConfig(cfg.Redis, db)
	if err != nil {
		return nil, err
	}
	d.Blacklist = bl
	d.Media = mediaService.New(db)

	// ===== storage =====
	var images storage.ImageStore
	if oss, err := storage.NewOSSService(cfg.Storage, cfg.Upload); err != nil {
		zap.L().Warn("OSS tidak aktif, upload gambar dimatikan", zap.Error(err))
	} else {
		images = oss
	}
	var blobs storage.BlobStore
	if sb, err := storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseServiceKey, cfg.Storage.SupabaseBucket); err != nil {
		zap.L().Warn("Supabase storage tidak aktif", zap.Error(err))
	} else {
		d.Supabase = sb
		blobs = sb
	}
	d.Uploads = uploadService.New(images, blobs, d.Media, cfg.Upload.MaxBytes)

	// ===== PPDB =====
	d.PPDBRepo = ppdbRepo.New(db)
	d.PPDB = ppdbService.New(d.PPDBRepo, buildNotifiers(ctx, cfg, d.PPDBRepo), cfg.Notify.SchoolName)
	if cfg.Payment.MidtransServerKey != "" {
		d.PPDB.Payment = ppdbService.NewPaymentGateway(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransUseProd, cfg.Payment.RegistrationFee)
	}

	// ===== users & auth =====
	users := userRepo.New(db)
	d.Users = userService.New(users)
	var google authService.GoogleVerifier
	if cfg.Auth.GoogleClientID != "" {
		google = authService.NewGoogleVerifier(cfg.Auth.GoogleClientID)
	}
	d.Auth = authService.New(users, bl, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, google)
	return d, nil
}

func buildNotifiers(ctx context.Context, cfg *configs.Config, repo ppdbRepo.Repository) *ppdbNotifier.Set {
	set := &ppdbNotifier.Set{
		OnSubmit: map[string]ppdbNotifier.SubmitNotifier{},
		OnStatus: map[string]ppdbNotifier.StatusNotifier{},
	}
	n := cfg.Notify

	if n.TelegramToken != "" {
		if tg, err := ppdbNotifier.NewTelegram(n.TelegramToken, n.TelegramChatID, n.SchoolName); err != nil {
			zap.L().Warn("telegram tidak aktif", zap.Error(err))
		} else {
			set.OnSubmit["telegram"] = tg
		}
	}
	if n.SheetsCredentialsFile != "" {
		if sh, err := ppdbNotifier.NewSheets(ctx, n.SheetsCredentialsFile, n.SheetsSpreadsheetID, n.SheetsRange); err != nil {
			zap.L().Warn("google sheets tidak aktif", zap.Error(err))
		} else {
			set.OnSubmit["sheets"] = sh
		}
	}
	if n.SendgridKey != "" {
		if em, err := ppdbNotifier.NewEmail(n.SendgridKey, n.MailFromName, n.MailFrom, n.SchoolName); err != nil {
			zap.L().Warn("email tidak aktif", zap.Error(err))
		} else {
			set.OnStatus["email"] = em
		}
	}
	p := cfg.Push
	if p.VAPIDPublicKey != "" {
		if wp, err := ppdbNotifier.NewWebPush(repo, p.VAPIDPublicKey, p.VAPIDPrivateKey, p.Subscriber, p.TTLSeconds, n.SchoolName); err != nil {
			zap.L().Warn("web push tidak aktif", zap.Error(err))
		} else {
			set.OnStatus["webpush"] = wp
		}
	}
	return set
}
