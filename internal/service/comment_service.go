package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// CommentService 评论服务
type CommentService struct {
	db           *gorm.DB
	logger       *zap.SugaredLogger
	notification *NotificationService
	sanitizer    *bluemonday.Policy
}

// NewCommentService 创建评论服务实例
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		db:           db,
		logger:       logger.GetSugaredLogger(),
		notification: NewNotificationService(db),
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

// Create 创建评论或回复
func (s *CommentService) Create(userID uint, req *dto.CommentCreateRequest) (*model.Comment, error) {
	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, fmt.Errorf("%w: 评论内容不能为空", ErrValidation)
	}

	// 检查博客是否存在且已发布
	var blog model.Blog
	if err := s.db.Where("slug = ? AND draft = ?", req.BlogSlug, false).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 博客不存在", ErrNotFound)
		}
		return nil, err
	}

	// 如果是回复，检查父评论是否存在且属于同一篇博客
	// 零值视为未指定，避免写入parent_id=0的孤儿评论
	var parentComment *model.Comment
	var parentID *uint
	if req.ParentID != nil && *req.ParentID > 0 {
		parentComment = &model.Comment{}
		if err := s.db.First(parentComment, *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: 回复的评论不存在", ErrNotFound)
			}
			return nil, err
		}
		if parentComment.BlogID != blog.ID {
			return nil, fmt.Errorf("%w: 不能回复其他博客的评论", ErrValidation)
		}
		parentID = req.ParentID
	}

	comment := &model.Comment{
		BlogID:       blog.ID,
		BlogAuthorID: blog.AuthorID,
		Content:      content,
		UserID:       userID,
		ParentID:     parentID,
		IsReply:      parentComment != nil,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		// 评论计数，顶级评论同时增加父评论计数
		updates := map[string]interface{}{
			"total_comments": gorm.Expr("total_comments + ?", 1),
		}
		if !comment.IsReply {
			updates["total_parent_comments"] = gorm.Expr("total_parent_comments + ?", 1)
		}
		if err := tx.Model(&model.Blog{}).
			Where("id = ?", blog.ID).
			UpdateColumns(updates).Error; err != nil {
			return err
		}

		return tx.Preload("User").First(comment, comment.ID).Error
	})
	if err != nil {
		return nil, err
	}

	// 通知属于次级写，失败只记日志，不影响评论结果
	recipientID := blog.AuthorID
	if parentComment != nil {
		recipientID = parentComment.UserID
	}
	if err := s.notification.CreateCommentNotification(comment, recipientID, req.NotificationID); err != nil {
		s.logger.Warnf("评论通知写入失败: %v", err)
	}

	return comment, nil
}

// ListTop 获取博客的顶级评论，按评论时间倒序
func (s *CommentService) ListTop(req *dto.CommentListRequest) (*dto.CommentListResponse, error) {
	req.Normalize(5)

	var blog model.Blog
	if err := s.db.Where("slug = ?", req.BlogSlug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 博客不存在", ErrNotFound)
		}
		return nil, err
	}

	query := s.db.Model(&model.Comment{}).
		Where("blog_id = ? AND parent_id IS NULL", blog.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []model.Comment
	err := query.Preload("User").
		Order("created_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return &dto.CommentListResponse{
		Total: total,
		List:  s.convertList(comments),
	}, nil
}

// ListReplies 获取某条评论的回复，按时间正序
func (s *CommentService) ListReplies(commentID uint, req *dto.ReplyListRequest) (*dto.CommentListResponse, error) {
	req.Normalize(5)

	query := s.db.Model(&model.Comment{}).Where("parent_id = ?", commentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var replies []model.Comment
	err := query.Preload("User").
		Order("created_at ASC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	return &dto.CommentListResponse{
		Total: total,
		List:  s.convertList(replies),
	}, nil
}

// Delete 删除评论及其整棵回复子树
// 只允许评论作者或博客作者删除；目标不存在视为幂等成功。
func (s *CommentService) Delete(commentID uint, userID uint) error {
	var comment model.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if comment.UserID != userID && comment.BlogAuthorID != userID {
		return fmt.Errorf("%w: 您无权删除该评论", ErrForbidden)
	}

	// 迭代收集整棵子树，避免深层回复链打爆调用栈
	subtreeIDs, err := s.collectSubtree(comment.ID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.notification.CleanupAfterCommentDelete(tx, subtreeIDs); err != nil {
			return err
		}

		if err := tx.Where("id IN ?", subtreeIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		// 顶级评论才回退父评论计数
		updates := map[string]interface{}{
			"total_comments": gorm.Expr("total_comments - ?", len(subtreeIDs)),
		}
		if !comment.IsReply {
			updates["total_parent_comments"] = gorm.Expr("total_parent_comments - ?", 1)
		}
		return tx.Model(&model.Blog{}).
			Where("id = ?", comment.BlogID).
			UpdateColumns(updates).Error
	})
}

// collectSubtree 广度优先收集评论子树的全部ID（含根节点）
func (s *CommentService) collectSubtree(rootID uint) ([]uint, error) {
	all := []uint{rootID}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		var children []uint
		err := s.db.Model(&model.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}

// childrenCounts 单次分组查询统计一批评论各自的直接回复数
func (s *CommentService) childrenCounts(commentIDs []uint) map[uint]int64 {
	counts := make(map[uint]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts
	}

	var rows []struct {
		ParentID uint
		Total    int64
	}
	err := s.db.Model(&model.Comment{}).
		Select("parent_id, COUNT(*) AS total").
		Where("parent_id IN ?", commentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		s.logger.Warnf("统计回复数失败: %v", err)
		return counts
	}

	for _, row := range rows {
		counts[row.ParentID] = row.Total
	}
	return counts
}

// convertList 批量生成评论响应，回复数一次查齐
func (s *CommentService) convertList(comments []model.Comment) []dto.CommentResponse {
	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}
	counts := s.childrenCounts(ids)

	list := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		list = append(list, s.ConvertToResponse(&comment, counts[comment.ID]))
	}
	return list
}

// ConvertToResponse 生成评论响应DTO
// 回复数前端用来决定是否展示"加载回复"。
func (s *CommentService) ConvertToResponse(comment *model.Comment, childrenCount int64) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:            comment.ID,
		Content:       comment.Content,
		BlogID:        comment.BlogID,
		UserID:        comment.UserID,
		ParentID:      comment.ParentID,
		IsReply:       comment.IsReply,
		ChildrenCount: childrenCount,
		CommentedAt:   comment.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if comment.User.ID > 0 {
		resp.User = dto.CommentUserInfo{
			ID:       comment.User.ID,
			Fullname: comment.User.Fullname,
			Username: comment.User.Username,
			Avatar:   comment.User.Avatar,
		}
	}

	return resp
}
