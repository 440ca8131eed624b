package database

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
)

var DB *gorm.DB

// DSN membangun URL koneksi + statement_timeout agar query liar tidak menahan pool.
func DSN(c configs.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("application_name", "sekolahku")
	if c.StatementTimeoutMs > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", c.StatementTimeoutMs))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func ConnectDB(c configs.DatabaseConfig) (*gorm.DB, error) {
	zap.L().Info("koneksi ke PostgreSQL", zap.String("host", c.Host), zap.String("db", c.Name))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(c),
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	DB = db
	zap.L().Info("DB connected")
	return db, nil
}

func TunePool(db *gorm.DB, c configs.DatabaseConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Warn("pool tune", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			zap.L().Warn("warm-up ping", zap.Error(err))
			return
		}
		// halaman depan paling sering membuka berita terbaru
		db.Exec("SELECT id FROM news WHERE is_published = TRUE ORDER BY published_at DESC LIMIT 1")
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
