package helper

import (
	"context"
	"errors"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blacklist menyimpan JTI sesi yang sudah logout sampai token kedaluwarsa.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

/* =========================================================
   Redis
========================================================= */

const redisBlacklistPrefix = "session:blacklist:"

type RedisBlacklist struct {
	rdb *goredis.Client
}

func NewRedisBlacklist(rdb *goredis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

// Revoke: TTL = sisa umur token, token yang sudah lewat tidak perlu disimpan.
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, redisBlacklistPrefix+jti, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, redisBlacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

/* =========================================================
   Postgres (fallback bila REDIS_ADDR kosong)
========================================================= */

type SessionBlacklistModel struct {
	JTI       string    `gorm:"column:jti;primaryKey"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SessionBlacklistModel) TableName() string { return "session_blacklist" }

type DBBlacklist struct {
	db *gorm.DB
}

func NewDBBlacklist(db *gorm.DB) *DBBlacklist {
	return &DBBlacklist{db: db}
}

func (b *DBBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !expiresAt.After(time.Now()) {
		return nil
	}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SessionBlacklistModel{JTI: jti, ExpiresAt: expiresAt}).Error
}

func (b *DBBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var row SessionBlacklistModel
	err := b.db.WithContext(ctx).Select("jti").Where("jti = ?", jti).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PruneExpired dipanggil scheduler; baris yang tokennya sudah mati tidak berguna lagi.
func (b *DBBlacklist) PruneExpired(ctx context.Context) (int64, error) {
	res := b.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&SessionBlacklistModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		zap.L().Info("session blacklist dibersihkan", zap.Int64("rows", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

/* =========================================================
   In-memory (test & dev tanpa DB)
========================================================= */

type MemoryBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{jtis: map[string]time.Time{}}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = expiresAt
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.jtis[jti]
	return ok && exp.After(time.Now()), nil
}
