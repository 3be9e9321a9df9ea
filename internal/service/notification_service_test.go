package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// 自己触发的通知照常落库，但列表和计数里看不到。
func TestNotificationListExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "自触发过滤", false)

	require.NoError(t, svc.CreateLikeNotification(author.ID, blog))
	require.NoError(t, svc.CreateLikeNotification(alice.ID, blog))

	var stored int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&stored).Error)
	assert.Equal(t, int64(2), stored)

	resp, err := svc.List(author.ID, &dto.NotificationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.List, 1)
	assert.Equal(t, alice.ID, resp.List[0].Sender.ID)

	count, err := svc.Count(author.ID, "all")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationListTypeFilter(t *testing.T) {
	db := setupTestDB(t)
	notificationSvc := NewNotificationService(db)
	commentSvc := NewCommentService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "类型过滤", false)

	require.NoError(t, notificationSvc.CreateLikeNotification(alice.ID, blog))
	_, err := commentSvc.Create(alice.ID, &dto.CommentCreateRequest{
		BlogSlug: blog.Slug, Content: "评论通知",
	})
	require.NoError(t, err)

	likes, err := notificationSvc.List(author.ID, &dto.NotificationListRequest{Type: "like"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes.Total)
	require.Len(t, likes.List, 1)
	assert.Equal(t, model.NotificationTypeLike, likes.List[0].Type)

	comments, err := notificationSvc.List(author.ID, &dto.NotificationListRequest{Type: "comment"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), comments.Total)

	all, err := notificationSvc.List(author.ID, &dto.NotificationListRequest{Type: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

// 拉取一页后这一页自动标记已读，响应里带的是拉取前的未读数。
func TestNotificationListMarksSeen(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "已读标记", false)

	require.NoError(t, svc.CreateLikeNotification(alice.ID, blog))

	hasUnseen, err := svc.HasUnseen(author.ID)
	require.NoError(t, err)
	assert.True(t, hasUnseen)

	resp, err := svc.List(author.ID, &dto.NotificationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UnseenCount)

	hasUnseen, err = svc.HasUnseen(author.ID)
	require.NoError(t, err)
	assert.False(t, hasUnseen)

	resp, err = svc.List(author.ID, &dto.NotificationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.UnseenCount)
	assert.Equal(t, int64(1), resp.Total)
}

func TestNotificationReplyTypeAndBackfill(t *testing.T) {
	db := setupTestDB(t)
	commentSvc := NewCommentService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "回复通知", false)

	parent, err := commentSvc.Create(alice.ID, &dto.CommentCreateRequest{
		BlogSlug: blog.Slug, Content: "alice的评论",
	})
	require.NoError(t, err)

	// 作者回复alice，通知类型为reply且带上被回复的评论
	reply, err := commentSvc.Create(author.ID, &dto.CommentCreateRequest{
		BlogSlug: blog.Slug, Content: "作者的回复", ParentID: &parent.ID,
	})
	require.NoError(t, err)

	var notification model.Notification
	require.NoError(t, db.Where("comment_id = ?", reply.ID).First(&notification).Error)
	assert.Equal(t, model.NotificationTypeReply, notification.Type)
	assert.Equal(t, alice.ID, notification.UserID)
	require.NotNil(t, notification.RepliedOnCommentID)
	assert.Equal(t, parent.ID, *notification.RepliedOnCommentID)
}

func TestNotificationListDeletedDocCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "分页补偿", false)

	for i := 0; i < 7; i++ {
		require.NoError(t, svc.CreateLikeNotification(alice.ID, blog))
	}

	// 第二页本应跳过5条，客户端报告删了2条则只跳3条
	resp, err := svc.List(author.ID, &dto.NotificationListRequest{
		PageRequest: dto.PageRequest{Page: 2, PageSize: 5, DeletedDocCount: 2},
	})
	require.NoError(t, err)
	assert.Len(t, resp.List, 4)
}

func TestNotificationCleanupSeen(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "通知清理", false)

	require.NoError(t, svc.CreateLikeNotification(alice.ID, blog))
	require.NoError(t, svc.CreateLikeNotification(alice.ID, blog))
	require.NoError(t, svc.CreateLikeNotification(alice.ID, blog))

	var notifications []model.Notification
	require.NoError(t, db.Order("id ASC").Find(&notifications).Error)
	require.Len(t, notifications, 3)

	old := time.Now().AddDate(0, 0, -60)
	// 第一条：已读且过期，应删除
	require.NoError(t, db.Model(&model.Notification{}).Where("id = ?", notifications[0].ID).
		UpdateColumns(map[string]interface{}{"seen": true, "updated_at": old}).Error)
	// 第二条：未读但过期，应保留
	require.NoError(t, db.Model(&model.Notification{}).Where("id = ?", notifications[1].ID).
		UpdateColumn("updated_at", old).Error)
	// 第三条：已读但未过期，应保留
	require.NoError(t, db.Model(&model.Notification{}).Where("id = ?", notifications[2].ID).
		UpdateColumn("seen", true).Error)

	require.NoError(t, svc.CleanupSeen(30))

	var remaining []uint
	require.NoError(t, db.Model(&model.Notification{}).Order("id ASC").Pluck("id", &remaining).Error)
	assert.Equal(t, []uint{notifications[1].ID, notifications[2].ID}, remaining)
}
