package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-api/internal/config"
)

// Cors 跨域中间件
func Cors() gin.HandlerFunc {
	cfg := config.GlobalConfig.App.Cors

	allowOrigins := "*"
	if len(cfg.AllowOrigins) > 0 {
		allowOrigins = strings.Join(cfg.AllowOrigins, ", ")
	}
	allowMethods := "GET, POST, PUT, DELETE, OPTIONS"
	if len(cfg.AllowMethods) > 0 {
		allowMethods = strings.Join(cfg.AllowMethods, ", ")
	}
	allowHeaders := "Origin, Content-Type, Accept, Authorization"
	if len(cfg.AllowHeaders) > 0 {
		allowHeaders = strings.Join(cfg.AllowHeaders, ", ")
	}

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigins)
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		if len(cfg.ExposedHeaders) > 0 {
			c.Header("Access-Control-Expose-Headers", strings.Join(cfg.ExposedHeaders, ", "))
		}
		c.Header("Access-Control-Allow-Credentials", strconv.FormatBool(cfg.AllowCredentials))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
