package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/middleware"
	"github.com/inkwell-blog/inkwell-api/internal/service"
	"github.com/inkwell-blog/inkwell-api/pkg/response"
)

// CommentApi 评论API控制器
type CommentApi struct {
	logger         *zap.SugaredLogger
	commentService *service.CommentService
}

// NewCommentApi 创建评论API控制器
func NewCommentApi(db *gorm.DB) *CommentApi {
	return &CommentApi{
		logger:         logger.GetSugaredLogger(),
		commentService: service.NewCommentService(db),
	}
}

// parseCommentID 解析路径参数中的评论ID
func parseCommentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return 0, false
	}
	return uint(id), true
}

// Create 发布评论或回复
func (api *CommentApi) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	comment, err := api.commentService.Create(userID, &req)
	if err != nil {
		handleServiceError(c, err, "发布评论失败")
		return
	}

	response.Success(c, "评论发布成功", api.commentService.ConvertToResponse(comment, 0))
}

// List 博客的顶层评论列表
func (api *CommentApi) List(c *gin.Context) {
	var req dto.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.commentService.ListTop(&req)
	if err != nil {
		handleServiceError(c, err, "查询评论失败")
		return
	}
	response.SuccessPage(c, "查询成功", resp.List, req.Page, req.PageSize, resp.Total)
}

// Replies 某条评论的回复列表
func (api *CommentApi) Replies(c *gin.Context) {
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	var req dto.ReplyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.commentService.ListReplies(commentID, &req)
	if err != nil {
		handleServiceError(c, err, "查询回复失败")
		return
	}
	response.SuccessPage(c, "查询成功", resp.List, req.Page, req.PageSize, resp.Total)
}

// Delete 删除评论及其整个回复子树
func (api *CommentApi) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	if err := api.commentService.Delete(commentID, userID); err != nil {
		handleServiceError(c, err, "删除评论失败")
		return
	}

	api.logger.Infof("评论删除成功: %d", commentID)
	response.Success(c, "删除成功", nil)
}
