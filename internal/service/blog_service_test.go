package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

func publishRequest(title string, draft bool) *dto.BlogPublishRequest {
	return &dto.BlogPublishRequest{
		Title:       title,
		Description: "一篇测试博客",
		Banner:      "https://example.com/banner.jpg",
		Content:     []model.ContentBlock{{Type: "paragraph", Data: map[string]any{"text": "正文"}}},
		Tags:        []string{"Go", "Web"},
		Draft:       draft,
	}
}

func TestBlogPublishRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	user := createTestUser(t, db, "regular", false)
	_, err := svc.Publish(user.ID, false, publishRequest("无权发布", false))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBlogPublishValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	admin := createTestUser(t, db, "admin", true)

	// 发布态缺简介
	req := publishRequest("缺简介", false)
	req.Description = ""
	_, err := svc.Publish(admin.ID, true, req)
	assert.ErrorIs(t, err, ErrValidation)

	// 简介按字符数限制，多字节文本不受字节数误伤
	req = publishRequest("中文简介", false)
	req.Description = strings.Repeat("简", 80)
	blog, err := svc.Publish(admin.ID, true, req)
	require.NoError(t, err)
	assert.Equal(t, 80, len([]rune(blog.Description)))

	req = publishRequest("简介超限", false)
	req.Description = strings.Repeat("简", 201)
	_, err = svc.Publish(admin.ID, true, req)
	assert.ErrorIs(t, err, ErrValidation)

	// 发布态缺封面
	req = publishRequest("缺封面", false)
	req.Banner = ""
	_, err = svc.Publish(admin.ID, true, req)
	assert.ErrorIs(t, err, ErrValidation)

	// 发布态缺正文
	req = publishRequest("缺正文", false)
	req.Content = nil
	_, err = svc.Publish(admin.ID, true, req)
	assert.ErrorIs(t, err, ErrValidation)

	// 发布态标签超限
	req = publishRequest("标签超限", false)
	req.Tags = make([]string, 11)
	for i := range req.Tags {
		req.Tags[i] = "tag"
	}
	_, err = svc.Publish(admin.ID, true, req)
	assert.ErrorIs(t, err, ErrValidation)

	// 草稿只要标题
	draft, err := svc.Publish(admin.ID, true, &dto.BlogPublishRequest{
		Title: "只有标题的草稿",
		Draft: true,
	})
	require.NoError(t, err)
	assert.True(t, draft.Draft)
	assert.NotEmpty(t, draft.Slug)
}

func TestBlogPublishCountsAndTags(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	admin := createTestUser(t, db, "admin", true)

	blog, err := svc.Publish(admin.ID, true, publishRequest("计数与标签", false))
	require.NoError(t, err)
	// 标签统一小写
	assert.Equal(t, []string{"go", "web"}, blog.Tags)

	var author model.User
	require.NoError(t, db.First(&author, admin.ID).Error)
	assert.Equal(t, int64(1), author.TotalPosts)

	// 草稿不计入发文数
	_, err = svc.Publish(admin.ID, true, publishRequest("一篇草稿", true))
	require.NoError(t, err)
	require.NoError(t, db.First(&author, admin.ID).Error)
	assert.Equal(t, int64(1), author.TotalPosts)
}

func TestBlogPublishEditKeepsSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	admin := createTestUser(t, db, "admin", true)
	other := createTestUser(t, db, "other", true)

	blog, err := svc.Publish(admin.ID, true, publishRequest("原始标题", false))
	require.NoError(t, err)

	req := publishRequest("改过的标题", false)
	req.Slug = blog.Slug
	updated, err := svc.Publish(admin.ID, true, req)
	require.NoError(t, err)
	assert.Equal(t, blog.Slug, updated.Slug)
	assert.Equal(t, "改过的标题", updated.Title)

	// 别的管理员不能编辑
	req = publishRequest("他人改动", false)
	req.Slug = blog.Slug
	_, err = svc.Publish(other.ID, true, req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBlogGetModes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	author := createTestUser(t, db, "author", true)
	reader := createTestUser(t, db, "reader", false)
	blog := createTestBlog(t, db, author, "阅读计数", false)
	draft := createTestBlog(t, db, author, "一篇草稿", true)

	// 普通阅读增加博客和作者的阅读数
	got, err := svc.Get(blog.Slug, "", reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalReads)

	updated := getBlog(t, db, blog.ID)
	assert.Equal(t, int64(1), updated.TotalReads)
	var authorRow model.User
	require.NoError(t, db.First(&authorRow, author.ID).Error)
	assert.Equal(t, int64(1), authorRow.TotalReads)

	// edit模式不计阅读且只允许本人
	_, err = svc.Get(blog.Slug, "edit", author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), getBlog(t, db, blog.ID).TotalReads)

	_, err = svc.Get(blog.Slug, "edit", reader.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// 草稿对外不可见，本人edit模式可见
	_, err = svc.Get(draft.Slug, "", reader.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(draft.Slug, "edit", author.ID)
	require.NoError(t, err)
}

func TestBlogListFiltersMutuallyExclusive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	_, err := svc.List(&dto.BlogListRequest{Tag: "go", Query: "fox"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlogListSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	author := createTestUser(t, db, "author", true)
	createTestBlog(t, db, author, "The Quick Fox", false)
	createTestBlog(t, db, author, "Turtles All The Way", false)
	createTestBlog(t, db, author, "Fox In Draft", true)

	// 大小写不敏感，草稿不出现
	resp, err := svc.List(&dto.BlogListRequest{Query: "fox"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "The Quick Fox", resp.List[0].Title)

	resp, err = svc.List(&dto.BlogListRequest{Query: "tUrTle"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	total, err := svc.CountSearch(&dto.BlogListRequest{Query: "fox"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestBlogListTagFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	admin := createTestUser(t, db, "admin", true)

	req := publishRequest("Go博客", false)
	req.Tags = []string{"Golang"}
	_, err := svc.Publish(admin.ID, true, req)
	require.NoError(t, err)

	req = publishRequest("Rust博客", false)
	req.Tags = []string{"rust"}
	_, err = svc.Publish(admin.ID, true, req)
	require.NoError(t, err)

	// 标签过滤大小写不敏感
	resp, err := svc.List(&dto.BlogListRequest{Tag: "golang"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "Go博客", resp.List[0].Title)
}

func TestBlogListPaginationWithDeletedDocCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	author := createTestUser(t, db, "author", true)
	for i := 0; i < 9; i++ {
		blog := createTestBlog(t, db, author, "分页博客", false)
		publishedAt := time.Now().Add(-time.Duration(i) * time.Hour)
		require.NoError(t, db.Model(blog).UpdateColumn("published_at", publishedAt).Error)
	}

	// 默认第一页5条
	resp, err := svc.List(&dto.BlogListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Total)
	assert.Len(t, resp.List, 5)

	// 第二页偏移被deleted_doc_count往回拨1条
	resp, err = svc.List(&dto.BlogListRequest{
		PageRequest: dto.PageRequest{Page: 2, PageSize: 5, DeletedDocCount: 1},
	})
	require.NoError(t, err)
	assert.Len(t, resp.List, 5)
}

func TestBlogTrendingOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	author := createTestUser(t, db, "author", true)

	low := createTestBlog(t, db, author, "低热度", false)
	mid := createTestBlog(t, db, author, "中热度", false)
	high := createTestBlog(t, db, author, "高热度", false)
	createTestBlog(t, db, author, "草稿热度", true)

	require.NoError(t, db.Model(low).UpdateColumns(map[string]interface{}{
		"total_reads": 10, "total_likes": 1,
	}).Error)
	require.NoError(t, db.Model(mid).UpdateColumns(map[string]interface{}{
		"total_reads": 50, "total_likes": 2,
	}).Error)
	require.NoError(t, db.Model(high).UpdateColumns(map[string]interface{}{
		"total_reads": 50, "total_likes": 9,
	}).Error)

	list, err := svc.Trending(5)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "高热度", list[0].Title)
	assert.Equal(t, "中热度", list[1].Title)
	assert.Equal(t, "低热度", list[2].Title)
}

func TestBlogUserBlogsDraftFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	author := createTestUser(t, db, "author", true)
	createTestBlog(t, db, author, "已发布一", false)
	createTestBlog(t, db, author, "已发布二", false)
	createTestBlog(t, db, author, "草稿一", true)

	published, err := svc.UserBlogs(author.ID, &dto.UserBlogListRequest{Draft: false})
	require.NoError(t, err)
	assert.Equal(t, int64(2), published.Total)

	drafts, err := svc.UserBlogs(author.ID, &dto.UserBlogListRequest{Draft: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), drafts.Total)
}

func TestBlogDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	blogSvc := NewBlogService(db)
	commentSvc := NewCommentService(db)
	likeSvc := NewBlogInteractionService(db)

	admin := createTestUser(t, db, "admin", true)
	alice := createTestUser(t, db, "alice", false)

	blog, err := blogSvc.Publish(admin.ID, true, publishRequest("待删除", false))
	require.NoError(t, err)

	_, err = commentSvc.Create(alice.ID, &dto.CommentCreateRequest{
		BlogSlug: blog.Slug, Content: "一条评论",
	})
	require.NoError(t, err)
	_, _, err = likeSvc.LikeToggle(alice.ID, blog.Slug)
	require.NoError(t, err)

	// 非管理员不能删
	assert.ErrorIs(t, blogSvc.Delete(blog.Slug, alice.ID, false), ErrForbidden)

	require.NoError(t, blogSvc.Delete(blog.Slug, admin.ID, true))

	var comments, notifications, likes int64
	require.NoError(t, db.Model(&model.Comment{}).Where("blog_id = ?", blog.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&model.Notification{}).Where("blog_id = ?", blog.ID).Count(&notifications).Error)
	require.NoError(t, db.Model(&model.BlogLike{}).Where("blog_id = ?", blog.ID).Count(&likes).Error)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), notifications)
	assert.Equal(t, int64(0), likes)

	// 发文数回退到发布前
	var author model.User
	require.NoError(t, db.First(&author, admin.ID).Error)
	assert.Equal(t, int64(0), author.TotalPosts)

	assert.ErrorIs(t, blogSvc.Delete(blog.Slug, admin.ID, true), ErrNotFound)
}
