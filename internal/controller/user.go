package controller

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/middleware"
	"github.com/inkwell-blog/inkwell-api/internal/service"
	"github.com/inkwell-blog/inkwell-api/pkg/auth"
	"github.com/inkwell-blog/inkwell-api/pkg/response"
)

// UserApi 用户API控制器
type UserApi struct {
	logger      *zap.SugaredLogger
	userService *service.UserService
}

// NewUserApi 创建用户API控制器
func NewUserApi(db *gorm.DB) *UserApi {
	return &UserApi{
		logger:      logger.GetSugaredLogger(),
		userService: service.NewUserService(db),
	}
}

// Register 用户注册
func (api *UserApi) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.userService.Register(&req)
	if err != nil {
		handleServiceError(c, err, "注册失败")
		return
	}

	api.logger.Infof("用户注册成功: %s", req.Email)
	response.Success(c, "注册成功", resp)
}

// Login 邮箱密码登录
func (api *UserApi) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.userService.Login(&req)
	if err != nil {
		handleServiceError(c, err, "登录失败")
		return
	}
	response.Success(c, "登录成功", resp)
}

// GoogleLogin Google凭证登录
func (api *UserApi) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.userService.GoogleLogin(&req)
	if err != nil {
		handleServiceError(c, err, "Google登录失败")
		return
	}
	response.Success(c, "登录成功", resp)
}

// refreshTokenFromHeader 取出RefreshAuth中间件已验证过的刷新令牌
func refreshTokenFromHeader(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// RefreshToken 刷新访问令牌，旧刷新令牌随之作废
func (api *UserApi) RefreshToken(c *gin.Context) {
	pair, err := auth.RefreshAccessToken(refreshTokenFromHeader(c))
	if err != nil {
		response.Unauthorized(c, "刷新令牌无效或已过期", err)
		return
	}
	response.Success(c, "刷新成功", pair)
}

// Logout 登出
// 吊销头部携带的刷新令牌，访问令牌由请求体可选携带。
func (api *UserApi) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if req.AccessToken != "" {
		if err := auth.RevokeToken(req.AccessToken); err != nil {
			api.logger.Warnf("吊销访问令牌失败: %v", err)
		}
	}
	if err := auth.RevokeToken(refreshTokenFromHeader(c)); err != nil {
		api.logger.Warnf("吊销刷新令牌失败: %v", err)
	}
	response.Success(c, "登出成功", nil)
}

// ChangePassword 修改密码
func (api *UserApi) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.ChangePassword(userID, &req); err != nil {
		handleServiceError(c, err, "修改密码失败")
		return
	}
	response.Success(c, "密码修改成功", nil)
}

// UpdateProfile 更新个人资料
func (api *UserApi) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.UpdateProfile(userID, &req); err != nil {
		handleServiceError(c, err, "更新资料失败")
		return
	}
	response.Success(c, "资料更新成功", gin.H{"username": req.Username})
}

// UpdateAvatar 更新头像
func (api *UserApi) UpdateAvatar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.AvatarUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.userService.UpdateAvatar(userID, req.URL); err != nil {
		handleServiceError(c, err, "更新头像失败")
		return
	}
	response.Success(c, "头像更新成功", gin.H{"avatar": req.URL})
}

// GetProfile 查询用户公开资料
func (api *UserApi) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "缺少用户名", nil)
		return
	}

	profile, err := api.userService.GetProfile(username)
	if err != nil {
		handleServiceError(c, err, "查询用户失败")
		return
	}
	response.Success(c, "查询成功", profile)
}

// Search 按用户名搜索用户
func (api *UserApi) Search(c *gin.Context) {
	var req dto.UserSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	users, err := api.userService.SearchUsers(&req)
	if err != nil {
		handleServiceError(c, err, "搜索用户失败")
		return
	}
	response.Success(c, "搜索成功", gin.H{"users": users})
}
