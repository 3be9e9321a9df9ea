package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/inkwell-blog/inkwell-api/internal/config"
)

// TokenType 定义token类型
type TokenType string

const (
	// AccessToken 访问令牌，用于访问资源
	AccessToken TokenType = "access"
	// RefreshToken 刷新令牌，用于获取新的访问令牌
	RefreshToken TokenType = "refresh"
)

// Claims 自定义JWT声明结构体
type Claims struct {
	UserID  uint      `json:"user_id"`
	Admin   bool      `json:"admin"`
	Type    TokenType `json:"type"`
	TokenID string    `json:"jti,omitempty"` // 令牌唯一ID，用于追踪和撤销
	jwt.StandardClaims
}

// TokenPair 包含访问令牌和刷新令牌
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // 访问令牌过期时间（秒）
	TokenID      string `json:"token_id"`
}

// GenerateTokenPair 生成访问令牌和刷新令牌对
func GenerateTokenPair(userID uint, admin bool) (*TokenPair, error) {
	accessExpire := time.Duration(config.GlobalConfig.JWT.AccessExpireSeconds) * time.Second
	refreshExpire := time.Duration(config.GlobalConfig.JWT.RefreshExpireSeconds) * time.Second

	tokenID := generateTokenID()

	accessToken, err := generateToken(userID, admin, AccessToken, accessExpire, tokenID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(userID, admin, RefreshToken, refreshExpire, tokenID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(accessExpire.Seconds()),
		TokenID:      tokenID,
	}, nil
}

// generateToken 创建指定类型的JWT令牌
func generateToken(userID uint, admin bool, tokenType TokenType, expiration time.Duration, tokenID string) (string, error) {
	expireTime := time.Now().Add(expiration)

	claims := Claims{
		UserID:  userID,
		Admin:   admin,
		Type:    tokenType,
		TokenID: tokenID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    config.GlobalConfig.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.GlobalConfig.JWT.SecretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken 解析JWT令牌
func ParseToken(tokenString string) (*Claims, error) {
	// 检查令牌是否在黑名单中
	if GetTokenBlacklist().IsBlacklisted(tokenString) {
		return nil, errors.New("令牌已被撤销")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.GlobalConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的令牌")
}

// RefreshAccessToken 使用刷新令牌获取新的令牌对
func RefreshAccessToken(refreshTokenString string) (*TokenPair, error) {
	claims, err := ParseToken(refreshTokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != RefreshToken {
		return nil, errors.New("无效的刷新令牌")
	}

	pair, err := GenerateTokenPair(claims.UserID, claims.Admin)
	if err != nil {
		return nil, err
	}

	// 旧的刷新令牌加入黑名单，完成轮换
	expireTime := time.Unix(claims.ExpiresAt, 0)
	GetTokenBlacklist().AddToBlacklist(refreshTokenString, expireTime)

	return pair, nil
}

// RevokeToken 撤销令牌（登出时使用）
func RevokeToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.GlobalConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return err
	}

	if claims, ok := token.Claims.(*Claims); ok {
		expireTime := time.Unix(claims.ExpiresAt, 0)
		return GetTokenBlacklist().AddToBlacklist(tokenString, expireTime)
	}

	return errors.New("无效的令牌")
}

// generateTokenID 生成令牌唯一ID
func generateTokenID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Unix())
}
