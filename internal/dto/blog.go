package dto

import "github.com/inkwell-blog/inkwell-api/internal/model"

// BlogPublishRequest 创建/更新博客请求
// Slug 非空时表示编辑既有博客并沿用原slug。
type BlogPublishRequest struct {
	Slug        string               `json:"blog_id"`
	Title       string               `json:"title" binding:"required,max=255"`
	Description string               `json:"description"`
	Banner      string               `json:"banner"`
	Content     []model.ContentBlock `json:"content"`
	Tags        []string             `json:"tags"`
	Draft       bool                 `json:"draft"`
}

// BlogListRequest 博客列表请求
// Tag、Query、AuthorID 互斥，最多给定一个。
type BlogListRequest struct {
	PageRequest
	Tag      string `form:"tag"`
	Query    string `form:"query"`
	AuthorID uint   `form:"author_id"`
}

// UserBlogListRequest 用户已写博客列表请求
type UserBlogListRequest struct {
	PageRequest
	Query string `form:"query"`
	Draft bool   `form:"draft"`
}

// BlogDetailRequest 博客详情请求
type BlogDetailRequest struct {
	Mode string `form:"mode" binding:"omitempty,oneof=edit read"`
}

// BlogCard 列表中的博客卡片
type BlogCard struct {
	Slug        string       `json:"blog_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Banner      string       `json:"banner"`
	Tags        []string     `json:"tags"`
	PublishedAt string       `json:"published_at"`
	Author      UserInfo     `json:"author"`
	Activity    BlogActivity `json:"activity"`
}

// BlogActivity 博客计数
type BlogActivity struct {
	TotalLikes          int64 `json:"total_likes"`
	TotalReads          int64 `json:"total_reads"`
	TotalComments       int64 `json:"total_comments"`
	TotalParentComments int64 `json:"total_parent_comments"`
}

// BlogDetailResponse 博客详情响应
type BlogDetailResponse struct {
	BlogCard
	Content []model.ContentBlock `json:"content"`
	Draft   bool                 `json:"draft"`
}

// BlogListResponse 博客列表响应
type BlogListResponse struct {
	Total int64      `json:"total"`
	List  []BlogCard `json:"list"`
}

// BlogLikeRequest 点赞请求
type BlogLikeRequest struct {
	IsLiked bool `json:"is_liked_by_user"`
}

// BlogLikeResponse 点赞响应
type BlogLikeResponse struct {
	LikedByUser bool  `json:"liked_by_user"`
	TotalLikes  int64 `json:"total_likes"`
}
