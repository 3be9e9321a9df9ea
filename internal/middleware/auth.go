package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/pkg/auth"
	"github.com/inkwell-blog/inkwell-api/pkg/response"
)

// bearerToken 从Authorization头提取Bearer令牌
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTAuth JWT认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "请先登录", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			logger.Warnf("无效的令牌: %v", err)
			response.Unauthorized(c, "无效的令牌", err)
			c.Abort()
			return
		}

		if claims.Type != auth.AccessToken {
			response.Unauthorized(c, "使用了错误类型的令牌", errors.New("需要访问令牌"))
			c.Abort()
			return
		}

		// 临近过期时提示客户端刷新
		bufferTime := time.Duration(config.GlobalConfig.JWT.BufferSeconds) * time.Second
		if time.Until(time.Unix(claims.ExpiresAt, 0)) < bufferTime {
			c.Header("X-Token-Expire-Soon", "true")
		}

		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.Admin)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// RefreshAuth 刷新访问令牌的认证中间件
func RefreshAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "请提供刷新令牌", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			logger.Warnf("无效的刷新令牌: %v", err)
			response.Unauthorized(c, "无效的刷新令牌", err)
			c.Abort()
			return
		}

		if claims.Type != auth.RefreshToken {
			response.Unauthorized(c, "使用了错误类型的令牌", errors.New("需要刷新令牌"))
			c.Abort()
			return
		}

		if time.Until(time.Unix(claims.ExpiresAt, 0)) < 24*time.Hour {
			c.Header("X-Refresh-Token-Expire-Soon", "true")
		}

		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.Admin)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件
// 未登录放行，带有效令牌时把用户信息写入上下文。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil || claims.Type != auth.AccessToken {
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.Admin)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// AdminAuth 管理员认证中间件
// 管理员校验在放行处理器之前完成。
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "请先登录", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil || claims.Type != auth.AccessToken {
			response.Unauthorized(c, "无效的令牌", err)
			c.Abort()
			return
		}

		if !claims.Admin {
			response.Forbidden(c, "需要管理员权限", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.Admin)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// GetUserID 从上下文中获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetIsAdmin 从上下文中获取管理员标记
func GetIsAdmin(c *gin.Context) bool {
	admin, exists := c.Get("isAdmin")
	if !exists {
		return false
	}
	return admin.(bool)
}

// GetTokenID 从上下文中获取令牌ID
func GetTokenID(c *gin.Context) (string, bool) {
	tokenID, exists := c.Get("tokenID")
	if !exists {
		return "", false
	}
	return tokenID.(string), true
}
