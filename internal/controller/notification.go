package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/middleware"
	"github.com/inkwell-blog/inkwell-api/internal/service"
	"github.com/inkwell-blog/inkwell-api/pkg/response"
)

// NotificationApi 通知API控制器
type NotificationApi struct {
	logger              *zap.SugaredLogger
	notificationService *service.NotificationService
}

// NewNotificationApi 创建通知API控制器
func NewNotificationApi(db *gorm.DB) *NotificationApi {
	return &NotificationApi{
		logger:              logger.GetSugaredLogger(),
		notificationService: service.NewNotificationService(db),
	}
}

// List 通知列表，返回的页内通知同时标记为已读
func (api *NotificationApi) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.notificationService.List(userID, &req)
	if err != nil {
		handleServiceError(c, err, "查询通知失败")
		return
	}
	response.Success(c, "查询成功", resp)
}

// Count 按类型统计通知数量
func (api *NotificationApi) Count(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.NotificationCountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	total, err := api.notificationService.Count(userID, req.Type)
	if err != nil {
		handleServiceError(c, err, "统计通知失败")
		return
	}
	response.Success(c, "查询成功", gin.H{"total": total})
}

// HasNew 是否有未读通知
func (api *NotificationApi) HasNew(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	hasUnseen, err := api.notificationService.HasUnseen(userID)
	if err != nil {
		handleServiceError(c, err, "查询通知失败")
		return
	}
	response.Success(c, "查询成功", dto.NewNotificationResponse{
		NewNotificationAvailable: hasUnseen,
	})
}
