package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-api/internal/service"
	"github.com/inkwell-blog/inkwell-api/pkg/response"
)

// handleServiceError 把服务层错误映射为HTTP响应
func handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error(), err)
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, err.Error(), err)
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error(), err)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error(), err)
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error(), err)
	default:
		response.InternalServerError(c, fallback, err)
	}
}
