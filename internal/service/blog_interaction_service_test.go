package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// 点赞再取消后计数和通知都恢复原状。
func TestLikeToggleRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogInteractionService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	blog := createTestBlog(t, db, author, "点赞往返", false)

	liked, total, err := svc.LikeToggle(alice.ID, blog.Slug)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), total)

	updated := getBlog(t, db, blog.ID)
	assert.Equal(t, int64(1), updated.TotalLikes)

	isLiked, err := svc.IsLiked(alice.ID, blog.Slug)
	require.NoError(t, err)
	assert.True(t, isLiked)

	var notifications int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("type = ? AND sender_id = ?", model.NotificationTypeLike, alice.ID).
		Count(&notifications).Error)
	assert.Equal(t, int64(1), notifications)

	// 取消点赞
	liked, total, err = svc.LikeToggle(alice.ID, blog.Slug)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), total)

	updated = getBlog(t, db, blog.ID)
	assert.Equal(t, int64(0), updated.TotalLikes)

	isLiked, err = svc.IsLiked(alice.ID, blog.Slug)
	require.NoError(t, err)
	assert.False(t, isLiked)

	require.NoError(t, db.Model(&model.Notification{}).
		Where("type = ? AND sender_id = ?", model.NotificationTypeLike, alice.ID).
		Count(&notifications).Error)
	assert.Equal(t, int64(0), notifications)
}

func TestLikeToggleRejectsDraft(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogInteractionService(db)

	author := createTestUser(t, db, "author", true)
	draft := createTestBlog(t, db, author, "草稿点赞", true)

	_, _, err := svc.LikeToggle(author.ID, draft.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeToggleIndependentUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogInteractionService(db)

	author := createTestUser(t, db, "author", true)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	blog := createTestBlog(t, db, author, "多人点赞", false)

	_, _, err := svc.LikeToggle(alice.ID, blog.Slug)
	require.NoError(t, err)
	_, total, err := svc.LikeToggle(bob.ID, blog.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// alice取消不影响bob
	_, total, err = svc.LikeToggle(alice.ID, blog.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	isLiked, err := svc.IsLiked(bob.ID, blog.Slug)
	require.NoError(t, err)
	assert.True(t, isLiked)
}
