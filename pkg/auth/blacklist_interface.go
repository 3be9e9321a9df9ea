package auth

import "time"

// TokenBlacklist 令牌黑名单接口
type TokenBlacklist interface {
	// AddToBlacklist 将令牌加入黑名单，过期后自动失效
	AddToBlacklist(token string, expireAt time.Time) error
	// IsBlacklisted 检查令牌是否在黑名单中
	IsBlacklisted(token string) bool
}
