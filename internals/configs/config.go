package configs

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config dibangun sekali di LoadEnv, lalu dibaca dari mana saja lewat C().
type Config struct {
	AppName     string
	Env         string
	Port        string
	CorsOrigins []string
	// CIDR proxy yang boleh mengisi X-Forwarded-For; kosong berarti pakai IP koneksi
	TrustedProxies []string

	DB       DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Push     PushConfig
	Notify   NotifyConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	Rollbar  RollbarConfig
	LogLevel string
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
	// StatementTimeoutMs dikirim via options=-c statement_timeout
	StatementTimeoutMs int
	MaxOpenConns       int
	MaxIdleConns       int
	AutoMigrate        bool
}

type AuthConfig struct {
	JWTSecret      string
	SessionTTL     time.Duration
	CookieName     string
	CookieSecure   bool
	GoogleClientID string
	// superadmin awal, dipakai seeder
	SeedUsername string
	SeedPassword string
	SeedEmail    string
}

type StorageConfig struct {
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	OSSEndpoint      string
	OSSAccessKey     string
	OSSSecretKey     string
	OSSSecurityToken string
	OSSBucket        string
	OSSPublicBaseURL string
}

type UploadConfig struct {
	MaxBytes     int64
	ImageMaxSide int
	WebPQuality  float32
}

type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
	TTLSeconds      int
}

type NotifyConfig struct {
	SchoolName     string
	SchoolTimezone string

	SendgridKey  string
	MailFrom     string
	MailFromName string

	TelegramToken  string
	TelegramChatID int64

	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsRange           string
}

type PaymentConfig struct {
	MidtransServerKey string
	MidtransUseProd   bool
	RegistrationFee   int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RollbarConfig struct {
	Token string
}

var cfg *Config

// =======================
// ENV LOADER
// =======================
func LoadEnv() *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			zap.L().Info("tidak menemukan .env file, menggunakan ENV dari sistem")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg = &Config{
		AppName:        v.GetString("APP_NAME"),
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		CorsOrigins:    splitCSV(v.GetString("CORS_ORIGINS")),
		TrustedProxies: splitCSV(v.GetString("TRUSTED_PROXIES")),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DB: DatabaseConfig{
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			StatementTimeoutMs: v.GetInt("DB_STATEMENT_TIMEOUT_MS"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			JWTSecret:      v.GetString("JWT_SECRET"),
			SessionTTL:     v.GetDuration("SESSION_TTL"),
			CookieName:     v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure:   v.GetBool("SESSION_COOKIE_SECURE"),
			GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),
			SeedUsername:   v.GetString("SUPERADMIN_USERNAME"),
			SeedPassword:   v.GetString("SUPERADMIN_PASSWORD"),
			SeedEmail:      v.GetString("SUPERADMIN_EMAIL"),
		},
		Storage: StorageConfig{
			SupabaseURL:        strings.TrimRight(v.GetString("SUPABASE_PROJECT_URL"), "/"),
			SupabaseServiceKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
			SupabaseBucket:     v.GetString("SUPABASE_BUCKET"),
			OSSEndpoint:        v.GetString("ALI_OSS_ENDPOINT"),
			OSSAccessKey:       v.GetString("ALI_OSS_ACCESS_KEY"),
			OSSSecretKey:       v.GetString("ALI_OSS_SECRET_KEY"),
			OSSSecurityToken:   v.GetString("ALI_OSS_SECURITY_TOKEN"),
			OSSBucket:          v.GetString("ALI_OSS_BUCKET"),
			OSSPublicBaseURL:   strings.TrimRight(v.GetString("ALI_OSS_PUBLIC_BASE_URL"), "/"),
		},
		Upload: UploadConfig{
			MaxBytes:     v.GetInt64("UPLOAD_MAX_BYTES"),
			ImageMaxSide: v.GetInt("IMAGE_MAX_SIDE"),
			WebPQuality:  float32(v.GetFloat64("IMAGE_WEBP_QUALITY")),
		},
		Push: PushConfig{
			VAPIDPublicKey:  v.GetString("VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: v.GetString("VAPID_PRIVATE_KEY"),
			Subscriber:      v.GetString("VAPID_SUBSCRIBER"),
			TTLSeconds:      v.GetInt("PUSH_TTL_SECONDS"),
		},
		Notify: NotifyConfig{
			SchoolName:            v.GetString("SCHOOL_NAME"),
			SchoolTimezone:        v.GetString("SCHOOL_TIMEZONE"),
			SendgridKey:           v.GetString("SENDGRID_API_KEY"),
			MailFrom:              v.GetString("MAIL_FROM"),
			MailFromName:          v.GetString("MAIL_FROM_NAME"),
			TelegramToken:         v.GetString("TELEGRAM_BOT_TOKEN"),
			TelegramChatID:        v.GetInt64("TELEGRAM_ADMIN_CHAT_ID"),
			SheetsCredentialsFile: v.GetString("GOOGLE_SHEETS_CREDENTIALS"),
			SheetsSpreadsheetID:   v.GetString("GOOGLE_SHEETS_SPREADSHEET_ID"),
			SheetsRange:           v.GetString("GOOGLE_SHEETS_RANGE"),
		},
		Payment: PaymentConfig{
			MidtransServerKey: v.GetString("MIDTRANS_SERVER_KEY"),
			MidtransUseProd:   v.GetBool("MIDTRANS_USE_PROD"),
			RegistrationFee:   v.GetInt64("PPDB_REGISTRATION_FEE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Rollbar: RollbarConfig{Token: v.GetString("ROLLBAR_TOKEN")},
	}

	if cfg.Auth.JWTSecret == "" {
		zap.L().Warn("JWT_SECRET belum diset")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "sekolahku")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TRUSTED_PROXIES", "127.0.0.1,::1")

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 3000)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_COOKIE_NAME", "session_token")
	v.SetDefault("SESSION_COOKIE_SECURE", true)

	v.SetDefault("SUPABASE_BUCKET", "files")
	v.SetDefault("UPLOAD_MAX_BYTES", 10*1024*1024)
	v.SetDefault("IMAGE_MAX_SIDE", 1600)
	v.SetDefault("IMAGE_WEBP_QUALITY", 80)

	v.SetDefault("VAPID_SUBSCRIBER", "admin@sekolah.sch.id")
	v.SetDefault("PUSH_TTL_SECONDS", 86400)

	v.SetDefault("SCHOOL_NAME", "Sekolahku")
	v.SetDefault("SCHOOL_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("MAIL_FROM_NAME", "Panitia PPDB")
	v.SetDefault("GOOGLE_SHEETS_RANGE", "PPDB!A:Z")
	v.SetDefault("PPDB_REGISTRATION_FEE", 0)
}

// C mengembalikan config aktif; LoadEnv dipanggil otomatis bila belum.
func C() *Config {
	if cfg == nil {
		return LoadEnv()
	}
	return cfg
}

// Set dipakai test untuk menyuntik config tanpa membaca ENV.
func Set(c *Config) { cfg = c }

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
