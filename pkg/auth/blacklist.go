package auth

import (
	"sync"
	"time"

	"github.com/inkwell-blog/inkwell-api/internal/config"
)

var (
	blacklist     TokenBlacklist
	blacklistOnce sync.Once
)

// GetTokenBlacklist 根据配置返回黑名单实现
func GetTokenBlacklist() TokenBlacklist {
	blacklistOnce.Do(func() {
		if config.GlobalConfig != nil && config.GlobalConfig.JWT.Blacklist == "redis" {
			blacklist = GetRedisTokenBlacklist()
			return
		}
		blacklist = NewMemoryTokenBlacklist()
	})
	return blacklist
}

// MemoryTokenBlacklist 进程内令牌黑名单实现
type MemoryTokenBlacklist struct {
	mutex  sync.RWMutex
	tokens map[string]time.Time
}

// NewMemoryTokenBlacklist 创建进程内黑名单
func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	b := &MemoryTokenBlacklist{
		tokens: make(map[string]time.Time),
	}
	go b.cleanupTask()
	return b
}

// AddToBlacklist 将令牌加入黑名单
func (b *MemoryTokenBlacklist) AddToBlacklist(token string, expireAt time.Time) error {
	if time.Until(expireAt) <= 0 {
		return nil // 已过期的令牌无需添加
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.tokens[token] = expireAt
	return nil
}

// IsBlacklisted 检查令牌是否在黑名单中
func (b *MemoryTokenBlacklist) IsBlacklisted(token string) bool {
	b.mutex.RLock()
	expireAt, exists := b.tokens[token]
	b.mutex.RUnlock()

	if !exists {
		return false
	}
	if time.Now().After(expireAt) {
		b.mutex.Lock()
		delete(b.tokens, token)
		b.mutex.Unlock()
		return false
	}
	return true
}

// cleanupTask 定期清理过期令牌
func (b *MemoryTokenBlacklist) cleanupTask() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		b.mutex.Lock()
		for token, expireAt := range b.tokens {
			if now.After(expireAt) {
				delete(b.tokens, token)
			}
		}
		b.mutex.Unlock()
	}
}
