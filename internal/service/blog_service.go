package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// BlogService 博客服务
type BlogService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewBlogService 创建博客服务实例
func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{
		db:     db,
		logger: logger.GetSugaredLogger(),
	}
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// generateSlug 由标题生成slug，追加随机后缀避免冲突
func generateSlug(title string) string {
	base := slugInvalidChars.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "blog"
	}
	return base + "-" + uuid.New().String()[:8]
}

// validatePublish 校验发布态博客的完整性
// 草稿只要求标题，发布要求简介、封面、正文和1-10个标签。
func validatePublish(req *dto.BlogPublishRequest) error {
	if req.Draft {
		return nil
	}
	if strings.TrimSpace(req.Description) == "" || utf8.RuneCountInString(req.Description) > 200 {
		return fmt.Errorf("%w: 发布博客需要不超过200字的简介", ErrValidation)
	}
	if req.Banner == "" {
		return fmt.Errorf("%w: 发布博客需要封面图", ErrValidation)
	}
	if len(req.Content) == 0 {
		return fmt.Errorf("%w: 发布博客需要正文内容", ErrValidation)
	}
	if len(req.Tags) == 0 || len(req.Tags) > 10 {
		return fmt.Errorf("%w: 发布博客需要1-10个标签", ErrValidation)
	}
	return nil
}

// Publish 创建或更新博客
// req.Slug 非空表示编辑既有博客并沿用原slug；
// 新建非草稿时作者的 total_posts 加一。
func (s *BlogService) Publish(userID uint, admin bool, req *dto.BlogPublishRequest) (*model.Blog, error) {
	if !admin {
		return nil, fmt.Errorf("%w: 只有管理员可以发布博客", ErrForbidden)
	}
	if err := validatePublish(req); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tags = append(tags, strings.ToLower(tag))
	}

	// 编辑既有博客
	if req.Slug != "" {
		var blog model.Blog
		if err := s.db.Where("slug = ?", req.Slug).First(&blog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: 博客不存在", ErrNotFound)
			}
			return nil, err
		}
		if blog.AuthorID != userID {
			return nil, fmt.Errorf("%w: 只能编辑自己的博客", ErrForbidden)
		}

		blog.Title = req.Title
		blog.Description = req.Description
		blog.Banner = req.Banner
		blog.Content = req.Content
		blog.Tags = tags
		blog.Draft = req.Draft
		if err := s.db.Save(&blog).Error; err != nil {
			return nil, err
		}
		return &blog, nil
	}

	// 新建博客
	blog := &model.Blog{
		Slug:        generateSlug(req.Title),
		Title:       req.Title,
		Description: req.Description,
		Banner:      req.Banner,
		Content:     req.Content,
		Tags:        tags,
		Draft:       req.Draft,
		AuthorID:    userID,
		PublishedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		// 草稿不计入作者发文数
		if !blog.Draft {
			return tx.Model(&model.User{}).
				Where("id = ?", userID).
				UpdateColumn("total_posts", gorm.Expr("total_posts + ?", 1)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Get 获取博客详情
// mode 为 edit 时要求本人访问且不计阅读；其余访问阅读计数加一。
func (s *BlogService) Get(slug string, mode string, currentUserID uint) (*model.Blog, error) {
	var blog model.Blog
	if err := s.db.Preload("Author").Where("slug = ?", slug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 博客不存在", ErrNotFound)
		}
		return nil, err
	}

	if mode == "edit" {
		if blog.AuthorID != currentUserID {
			return nil, fmt.Errorf("%w: 只能编辑自己的博客", ErrForbidden)
		}
		return &blog, nil
	}

	// 草稿不对外可见
	if blog.Draft {
		return nil, fmt.Errorf("%w: 博客不存在", ErrNotFound)
	}

	s.recordRead(&blog)
	blog.TotalReads++
	return &blog, nil
}

// recordRead 记录一次阅读
// 次级写，失败只记日志不上抛。
func (s *BlogService) recordRead(blog *model.Blog) {
	if err := s.db.Model(&model.Blog{}).
		Where("id = ?", blog.ID).
		UpdateColumn("total_reads", gorm.Expr("total_reads + ?", 1)).Error; err != nil {
		s.logger.Warnf("更新博客阅读数失败: %v", err)
	}
	if err := s.db.Model(&model.User{}).
		Where("id = ?", blog.AuthorID).
		UpdateColumn("total_reads", gorm.Expr("total_reads + ?", 1)).Error; err != nil {
		s.logger.Warnf("更新作者阅读数失败: %v", err)
	}
}

// Delete 删除博客并级联清理评论、通知和点赞记录
// 发文数回退记在博客作者身上，而不是发起删除的用户。
func (s *BlogService) Delete(slug string, userID uint, admin bool) error {
	var blog model.Blog
	if err := s.db.Where("slug = ?", slug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 博客不存在", ErrNotFound)
		}
		return err
	}

	if !admin {
		return fmt.Errorf("%w: 只有管理员可以删除博客", ErrForbidden)
	}
	if blog.AuthorID != userID {
		return fmt.Errorf("%w: 只能删除自己的博客", ErrForbidden)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&model.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&blog).Error; err != nil {
			return err
		}
		if !blog.Draft {
			return tx.Model(&model.User{}).
				Where("id = ?", blog.AuthorID).
				UpdateColumn("total_posts", gorm.Expr("total_posts - ?", 1)).Error
		}
		return nil
	})
}

// applyListFilters 套用列表过滤条件
// 标签、标题搜索、作者三种过滤互斥。
func (s *BlogService) applyListFilters(query *gorm.DB, req *dto.BlogListRequest) (*gorm.DB, error) {
	set := 0
	if req.Tag != "" {
		set++
	}
	if req.Query != "" {
		set++
	}
	if req.AuthorID != 0 {
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("%w: 标签、搜索词和作者过滤只能选一个", ErrValidation)
	}

	switch {
	case req.Tag != "":
		// 标签写入时已统一小写，JSON序列化后做包含匹配
		query = query.Where("tags LIKE ?", "%\""+strings.ToLower(req.Tag)+"\"%")
	case req.Query != "":
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(req.Query)+"%")
	case req.AuthorID != 0:
		query = query.Where("author_id = ?", req.AuthorID)
	}
	return query, nil
}

// List 最新博客列表，草稿除外
func (s *BlogService) List(req *dto.BlogListRequest) (*dto.BlogListResponse, error) {
	req.Normalize(5)

	query := s.db.Model(&model.Blog{}).Where("draft = ?", false)
	query, err := s.applyListFilters(query, req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var blogs []model.Blog
	err = query.Preload("Author").
		Order("published_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	return &dto.BlogListResponse{
		Total: total,
		List:  s.convertToCards(blogs),
	}, nil
}

// CountSearch 与List同样的过滤条件，只返回总数
func (s *BlogService) CountSearch(req *dto.BlogListRequest) (int64, error) {
	query := s.db.Model(&model.Blog{}).Where("draft = ?", false)
	query, err := s.applyListFilters(query, req)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Trending 热门博客：阅读数、点赞数、发布时间依次降序
func (s *BlogService) Trending(limit int) ([]dto.BlogCard, error) {
	if limit <= 0 {
		limit = 5
	}

	var blogs []model.Blog
	err := s.db.Model(&model.Blog{}).
		Where("draft = ?", false).
		Preload("Author").
		Order("total_reads DESC").
		Order("total_likes DESC").
		Order("published_at DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return s.convertToCards(blogs), nil
}

// UserBlogs 当前用户已写博客，可按草稿状态和标题过滤
func (s *BlogService) UserBlogs(userID uint, req *dto.UserBlogListRequest) (*dto.BlogListResponse, error) {
	req.Normalize(5)

	query := s.db.Model(&model.Blog{}).
		Where("author_id = ? AND draft = ?", userID, req.Draft)
	if req.Query != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(req.Query)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var blogs []model.Blog
	err := query.Preload("Author").
		Order("published_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	return &dto.BlogListResponse{
		Total: total,
		List:  s.convertToCards(blogs),
	}, nil
}

// convertToCards 转换为列表卡片
func (s *BlogService) convertToCards(blogs []model.Blog) []dto.BlogCard {
	cards := make([]dto.BlogCard, 0, len(blogs))
	for _, blog := range blogs {
		cards = append(cards, ConvertToCard(&blog))
	}
	return cards
}

// ConvertToCard 转换单篇博客为卡片DTO
func ConvertToCard(blog *model.Blog) dto.BlogCard {
	return dto.BlogCard{
		Slug:        blog.Slug,
		Title:       blog.Title,
		Description: blog.Description,
		Banner:      blog.Banner,
		Tags:        blog.Tags,
		PublishedAt: blog.PublishedAt.Format("2006-01-02 15:04:05"),
		Author: dto.UserInfo{
			ID:       blog.Author.ID,
			Fullname: blog.Author.Fullname,
			Username: blog.Author.Username,
			Avatar:   blog.Author.Avatar,
		},
		Activity: dto.BlogActivity{
			TotalLikes:          blog.TotalLikes,
			TotalReads:          blog.TotalReads,
			TotalComments:       blog.TotalComments,
			TotalParentComments: blog.TotalParentComments,
		},
	}
}
