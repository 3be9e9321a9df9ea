package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/internal/config"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret-key",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 86400,
			Issuer:               "inkwell-test",
			Blacklist:            "memory",
		},
	}
	os.Exit(m.Run())
}

func TestGenerateAndParseTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 3600, pair.ExpiresIn)

	claims, err := ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.Admin)
	assert.Equal(t, AccessToken, claims.Type)
	assert.Equal(t, "inkwell-test", claims.Issuer)

	refreshClaims, err := ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, refreshClaims.Type)
	assert.Equal(t, claims.TokenID, refreshClaims.TokenID)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	pair, err := GenerateTokenPair(1, false)
	require.NoError(t, err)

	_, err = ParseToken(pair.AccessToken + "x")
	assert.Error(t, err)
}

// 刷新轮换后旧的刷新令牌立即失效。
func TestRefreshAccessTokenRotates(t *testing.T) {
	pair, err := GenerateTokenPair(7, false)
	require.NoError(t, err)

	newPair, err := RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	_, err = ParseToken(pair.RefreshToken)
	assert.Error(t, err)

	// 访问令牌不能用来刷新
	_, err = RefreshAccessToken(newPair.AccessToken)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	pair, err := GenerateTokenPair(9, false)
	require.NoError(t, err)

	require.NoError(t, RevokeToken(pair.AccessToken))
	_, err = ParseToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	b := NewMemoryTokenBlacklist()

	// 已过期的令牌不会入黑名单
	require.NoError(t, b.AddToBlacklist("expired", time.Now().Add(-time.Minute)))
	assert.False(t, b.IsBlacklisted("expired"))

	require.NoError(t, b.AddToBlacklist("active", time.Now().Add(time.Hour)))
	assert.True(t, b.IsBlacklisted("active"))
	assert.False(t, b.IsBlacklisted("unknown"))
}
