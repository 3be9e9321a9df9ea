package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/pkg/auth"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret-key",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 86400,
			BufferSeconds:        300,
			Issuer:               "inkwell-test",
			Blacklist:            "memory",
		},
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func adminTestRouter(handled *bool) *gin.Engine {
	r := gin.New()
	r.POST("/admin", AdminAuth(), func(c *gin.Context) {
		*handled = true
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthAllowsAdmin(t *testing.T) {
	var handled bool
	r := adminTestRouter(&handled)

	pair, err := auth.GenerateTokenPair(1, true)
	require.NoError(t, err)

	w := doRequest(t, r, pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handled)
}

func TestAdminAuthBlocksNonAdminBeforeHandler(t *testing.T) {
	var handled bool
	r := adminTestRouter(&handled)

	pair, err := auth.GenerateTokenPair(2, false)
	require.NoError(t, err)

	w := doRequest(t, r, pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handled, "非管理员不应触达处理器")
}

func TestAdminAuthRejectsMissingOrWrongToken(t *testing.T) {
	var handled bool
	r := adminTestRouter(&handled)

	// 无令牌
	w := doRequest(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 刷新令牌不能当访问令牌用
	pair, err := auth.GenerateTokenPair(3, true)
	require.NoError(t, err)
	w = doRequest(t, r, pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handled)
}
