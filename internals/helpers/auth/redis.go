package helper

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
)

// NewBlacklistFromConfig memilih Redis bila REDIS_ADDR diisi, selain itu tabel session_blacklist.
func NewBlacklistFromConfig(c configs.RedisConfig, db *gorm.DB) (Blacklist, error) {
	if c.Addr == "" {
		zap.L().Info("session blacklist memakai postgres")
		return NewDBBlacklist(db), nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	zap.L().Info("session blacklist memakai redis", zap.String("addr", c.Addr))
	return NewRedisBlacklist(rdb), nil
}
