package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// BlogInteractionService 博客点赞服务
type BlogInteractionService struct {
	db           *gorm.DB
	logger       *zap.SugaredLogger
	notification *NotificationService
}

// NewBlogInteractionService 创建点赞服务实例
func NewBlogInteractionService(db *gorm.DB) *BlogInteractionService {
	return &BlogInteractionService{
		db:           db,
		logger:       logger.GetSugaredLogger(),
		notification: NewNotificationService(db),
	}
}

// LikeToggle 切换点赞状态
// 以点赞记录表为准判断当前状态，返回切换后是否已点赞。
func (s *BlogInteractionService) LikeToggle(userID uint, slug string) (bool, int64, error) {
	var blog model.Blog
	if err := s.db.Where("slug = ? AND draft = ?", slug, false).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, fmt.Errorf("%w: 博客不存在", ErrNotFound)
		}
		return false, 0, err
	}

	var like model.BlogLike
	err := s.db.Where("user_id = ? AND blog_id = ?", userID, blog.ID).First(&like).Error
	liked := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, err
	}

	if liked {
		// 取消点赞
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			return tx.Model(&model.Blog{}).
				Where("id = ?", blog.ID).
				UpdateColumn("total_likes", gorm.Expr("total_likes - ?", 1)).Error
		})
		if err != nil {
			return false, 0, err
		}
		if err := s.notification.RemoveLikeNotification(userID, blog.ID); err != nil {
			s.logger.Warnf("删除点赞通知失败: %v", err)
		}
		return false, blog.TotalLikes - 1, nil
	}

	// 点赞
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.BlogLike{UserID: userID, BlogID: blog.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Blog{}).
			Where("id = ?", blog.ID).
			UpdateColumn("total_likes", gorm.Expr("total_likes + ?", 1)).Error
	})
	if err != nil {
		return false, 0, err
	}
	if err := s.notification.CreateLikeNotification(userID, &blog); err != nil {
		s.logger.Warnf("创建点赞通知失败: %v", err)
	}
	return true, blog.TotalLikes + 1, nil
}

// IsLiked 当前用户是否已点赞该博客
func (s *BlogInteractionService) IsLiked(userID uint, slug string) (bool, error) {
	var blog model.Blog
	if err := s.db.Where("slug = ?", slug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: 博客不存在", ErrNotFound)
		}
		return false, err
	}

	var count int64
	err := s.db.Model(&model.BlogLike{}).
		Where("user_id = ? AND blog_id = ?", userID, blog.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
