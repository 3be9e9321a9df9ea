package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// NotificationService 通知服务
type NotificationService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewNotificationService 创建通知服务实例
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:     db,
		logger: logger.GetSugaredLogger(),
	}
}

// CreateLikeNotification 创建点赞通知
// 自己点赞自己的文章同样落库，接收者过滤只在列表查询时做。
func (s *NotificationService) CreateLikeNotification(senderID uint, blog *model.Blog) error {
	notification := &model.Notification{
		Type:     model.NotificationTypeLike,
		BlogID:   blog.ID,
		UserID:   blog.AuthorID,
		SenderID: senderID,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("创建点赞通知失败: %w", err)
	}
	return nil
}

// RemoveLikeNotification 取消点赞时删除对应的点赞通知
func (s *NotificationService) RemoveLikeNotification(senderID uint, blogID uint) error {
	err := s.db.Where("type = ? AND sender_id = ? AND blog_id = ?",
		model.NotificationTypeLike, senderID, blogID).
		Delete(&model.Notification{}).Error
	if err != nil {
		return fmt.Errorf("删除点赞通知失败: %w", err)
	}
	return nil
}

// CreateCommentNotification 创建评论/回复通知
// 回复通知发给父评论作者并带上 replied_on_comment；
// priorNotificationID 非空时把新评论回填到那条通知的 reply 字段。
func (s *NotificationService) CreateCommentNotification(comment *model.Comment, recipientID uint, priorNotificationID *uint) error {
	notificationType := model.NotificationTypeComment
	if comment.IsReply {
		notificationType = model.NotificationTypeReply
	}

	notification := &model.Notification{
		Type:               notificationType,
		BlogID:             comment.BlogID,
		UserID:             recipientID,
		SenderID:           comment.UserID,
		CommentID:          &comment.ID,
		RepliedOnCommentID: comment.ParentID,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("创建评论通知失败: %w", err)
	}

	if priorNotificationID != nil {
		if err := s.attachReply(*priorNotificationID, comment.ID); err != nil {
			return err
		}
	}
	return nil
}

// attachReply 把新回复回填到触发它的那条通知上
func (s *NotificationService) attachReply(notificationID, replyCommentID uint) error {
	err := s.db.Model(&model.Notification{}).
		Where("id = ?", notificationID).
		Update("reply_id", replyCommentID).Error
	if err != nil {
		return fmt.Errorf("回填通知reply字段失败: %w", err)
	}
	return nil
}

// CleanupAfterCommentDelete 评论级联删除时清理通知
// 引用被删评论的通知整条删除；仅 reply 字段引用的只清空该字段，通知保留。
// 在调用方的事务里执行。
func (s *NotificationService) CleanupAfterCommentDelete(tx *gorm.DB, commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}

	if err := tx.Where("comment_id IN ?", commentIDs).
		Delete(&model.Notification{}).Error; err != nil {
		return fmt.Errorf("删除评论通知失败: %w", err)
	}

	if err := tx.Model(&model.Notification{}).
		Where("reply_id IN ?", commentIDs).
		Update("reply_id", nil).Error; err != nil {
		return fmt.Errorf("清空通知reply字段失败: %w", err)
	}
	return nil
}

// notificationFilter 统一列表/计数的过滤条件
// 自己触发的不给自己看。
func (s *NotificationService) notificationFilter(userID uint, notificationType string) *gorm.DB {
	query := s.db.Model(&model.Notification{}).
		Where("user_id = ?", userID).
		Where("sender_id <> ?", userID)
	if notificationType != "" && notificationType != "all" {
		query = query.Where("type = ?", notificationType)
	}
	return query
}

// List 获取用户通知列表
// 返回一页后把这一页标记为已读（尽力而为，失败只记日志）。
func (s *NotificationService) List(userID uint, req *dto.NotificationListRequest) (*dto.NotificationListResponse, error) {
	req.Normalize(10)

	var total, unseen int64
	g := new(errgroup.Group)
	g.Go(func() error {
		return s.notificationFilter(userID, req.Type).Count(&total).Error
	})
	g.Go(func() error {
		return s.notificationFilter(userID, req.Type).Where("seen = ?", false).Count(&unseen).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("获取通知计数失败: %w", err)
	}

	var notifications []model.Notification
	err := s.notificationFilter(userID, req.Type).
		Preload("Sender").Preload("Blog").
		Preload("Comment").Preload("RepliedOnComment").Preload("Reply").
		Order("created_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("查询通知列表失败: %w", err)
	}

	list := make([]dto.NotificationResponse, 0, len(notifications))
	pagedIDs := make([]uint, 0, len(notifications))
	for _, notification := range notifications {
		list = append(list, s.convertToResponse(&notification))
		pagedIDs = append(pagedIDs, notification.ID)
	}

	s.markSeen(pagedIDs)

	return &dto.NotificationListResponse{
		Total:       total,
		UnseenCount: unseen,
		List:        list,
	}, nil
}

// markSeen 将返回的这一页通知标记为已读
func (s *NotificationService) markSeen(ids []uint) {
	if len(ids) == 0 {
		return
	}
	err := s.db.Model(&model.Notification{}).
		Where("id IN ? AND seen = ?", ids, false).
		Update("seen", true).Error
	if err != nil {
		s.logger.Warnf("标记通知已读失败: %v", err)
	}
}

// convertToResponse 转换为通知响应格式
func (s *NotificationService) convertToResponse(notification *model.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Seen:      notification.Seen,
		CreatedAt: notification.CreatedAt.Format("2006-01-02 15:04:05"),
		Sender: dto.UserInfo{
			ID:       notification.Sender.ID,
			Fullname: notification.Sender.Fullname,
			Username: notification.Sender.Username,
			Avatar:   notification.Sender.Avatar,
		},
		Blog: dto.NotificationBlogInfo{
			ID:    notification.Blog.ID,
			Slug:  notification.Blog.Slug,
			Title: notification.Blog.Title,
		},
	}

	if notification.Comment != nil {
		resp.Comment = &dto.NotificationCommentInfo{
			ID:      notification.Comment.ID,
			Content: notification.Comment.Content,
		}
	}
	if notification.RepliedOnComment != nil {
		resp.RepliedOnComment = &dto.NotificationCommentInfo{
			ID:      notification.RepliedOnComment.ID,
			Content: notification.RepliedOnComment.Content,
		}
	}
	if notification.Reply != nil {
		resp.Reply = &dto.NotificationCommentInfo{
			ID:      notification.Reply.ID,
			Content: notification.Reply.Content,
		}
	}
	return resp
}

// Count 按类型统计通知数量
func (s *NotificationService) Count(userID uint, notificationType string) (int64, error) {
	var count int64
	if err := s.notificationFilter(userID, notificationType).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计通知数量失败: %w", err)
	}
	return count, nil
}

// HasUnseen 是否存在未读通知
func (s *NotificationService) HasUnseen(userID uint) (bool, error) {
	var notification model.Notification
	err := s.notificationFilter(userID, "").
		Where("seen = ?", false).
		Select("id").
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("检查未读通知失败: %w", err)
	}
	return true, nil
}

// CleanupSeen 清理已读的历史通知（定时任务）
func (s *NotificationService) CleanupSeen(days int) error {
	if days <= 0 {
		days = 30
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	result := s.db.Where("seen = ? AND updated_at < ?", true, cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		return fmt.Errorf("清理已读通知失败: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.logger.Infof("清理了 %d 条过期的已读通知", result.RowsAffected)
	}
	return nil
}
