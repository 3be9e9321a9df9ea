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

// BlogApi 博客API控制器
type BlogApi struct {
	logger             *zap.SugaredLogger
	blogService        *service.BlogService
	interactionService *service.BlogInteractionService
}

// NewBlogApi 创建博客API控制器
func NewBlogApi(db *gorm.DB) *BlogApi {
	return &BlogApi{
		logger:             logger.GetSugaredLogger(),
		blogService:        service.NewBlogService(db),
		interactionService: service.NewBlogInteractionService(db),
	}
}

// Publish 创建或更新博客
func (api *BlogApi) Publish(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.BlogPublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	blog, err := api.blogService.Publish(userID, middleware.GetIsAdmin(c), &req)
	if err != nil {
		handleServiceError(c, err, "保存博客失败")
		return
	}

	api.logger.Infof("博客保存成功: %s", blog.Slug)
	response.Success(c, "保存成功", gin.H{"blog_id": blog.Slug})
}

// Detail 博客详情
func (api *BlogApi) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.BlogDetailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	blog, err := api.blogService.Get(slug, req.Mode, userID)
	if err != nil {
		handleServiceError(c, err, "查询博客失败")
		return
	}

	resp := dto.BlogDetailResponse{
		BlogCard: service.ConvertToCard(blog),
		Content:  blog.Content,
		Draft:    blog.Draft,
	}
	response.Success(c, "查询成功", resp)
}

// Delete 删除博客
func (api *BlogApi) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	slug := c.Param("slug")
	if err := api.blogService.Delete(slug, userID, middleware.GetIsAdmin(c)); err != nil {
		handleServiceError(c, err, "删除博客失败")
		return
	}

	api.logger.Infof("博客删除成功: %s", slug)
	response.Success(c, "删除成功", nil)
}

// List 最新博客列表
func (api *BlogApi) List(c *gin.Context) {
	var req dto.BlogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.blogService.List(&req)
	if err != nil {
		handleServiceError(c, err, "查询博客列表失败")
		return
	}
	response.SuccessPage(c, "查询成功", resp.List, req.Page, req.PageSize, resp.Total)
}

// Count 与列表同条件的总数
func (api *BlogApi) Count(c *gin.Context) {
	var req dto.BlogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	total, err := api.blogService.CountSearch(&req)
	if err != nil {
		handleServiceError(c, err, "统计博客失败")
		return
	}
	response.Success(c, "查询成功", gin.H{"total": total})
}

// Trending 热门博客
func (api *BlogApi) Trending(c *gin.Context) {
	list, err := api.blogService.Trending(5)
	if err != nil {
		handleServiceError(c, err, "查询热门博客失败")
		return
	}
	response.Success(c, "查询成功", gin.H{"list": list})
}

// UserBlogs 当前用户已写博客
func (api *BlogApi) UserBlogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	var req dto.UserBlogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	resp, err := api.blogService.UserBlogs(userID, &req)
	if err != nil {
		handleServiceError(c, err, "查询博客失败")
		return
	}
	response.SuccessPage(c, "查询成功", resp.List, req.Page, req.PageSize, resp.Total)
}

// LikeToggle 切换点赞状态
func (api *BlogApi) LikeToggle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	slug := c.Param("slug")
	liked, totalLikes, err := api.interactionService.LikeToggle(userID, slug)
	if err != nil {
		handleServiceError(c, err, "点赞操作失败")
		return
	}

	response.Success(c, "操作成功", dto.BlogLikeResponse{
		LikedByUser: liked,
		TotalLikes:  totalLikes,
	})
}

// IsLiked 当前用户是否已点赞
func (api *BlogApi) IsLiked(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "需要登录", nil)
		return
	}

	slug := c.Param("slug")
	liked, err := api.interactionService.IsLiked(userID, slug)
	if err != nil {
		handleServiceError(c, err, "查询点赞状态失败")
		return
	}
	response.Success(c, "查询成功", gin.H{"liked_by_user": liked})
}
