package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell-api/internal/database"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
)

// RedisTokenBlacklist Redis令牌黑名单实现
type RedisTokenBlacklist struct {
	redis *redis.Client
	ctx   context.Context
}

var (
	redisBlacklist     *RedisTokenBlacklist
	redisBlacklistOnce sync.Once
)

// Redis键前缀
const blacklistKeyPrefix = "jwt:blacklist:"

// GetRedisTokenBlacklist 获取Redis令牌黑名单单例
func GetRedisTokenBlacklist() *RedisTokenBlacklist {
	redisBlacklistOnce.Do(func() {
		redisBlacklist = &RedisTokenBlacklist{
			redis: database.GetRedis(),
			ctx:   context.Background(),
		}
	})
	return redisBlacklist
}

// AddToBlacklist 将令牌添加到黑名单
func (b *RedisTokenBlacklist) AddToBlacklist(token string, expireAt time.Time) error {
	duration := time.Until(expireAt)
	if duration <= 0 {
		return nil // 已过期的令牌无需添加
	}

	key := blacklistKeyPrefix + token
	if err := b.redis.Set(b.ctx, key, "1", duration).Err(); err != nil {
		logger.Error("添加令牌到Redis黑名单失败", zap.Error(err))
		return fmt.Errorf("添加令牌到黑名单失败: %w", err)
	}
	return nil
}

// IsBlacklisted 检查令牌是否在黑名单中
func (b *RedisTokenBlacklist) IsBlacklisted(token string) bool {
	key := blacklistKeyPrefix + token
	result, err := b.redis.Exists(b.ctx, key).Result()
	if err != nil {
		// Redis异常时放行，由令牌本身的签名和过期时间兜底
		logger.Error("检查Redis黑名单失败", zap.Error(err))
		return false
	}
	return result > 0
}
