package service

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

func TestMain(m *testing.M) {
	// 令牌签发和黑名单依赖全局配置
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret-key",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 86400,
			BufferSeconds:        300,
			Issuer:               "inkwell-test",
			Blacklist:            "memory",
		},
	}
	os.Exit(m.Run())
}

// setupTestDB 为每个测试打开独立的内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := model.InitTables(db); err != nil {
		t.Fatalf("初始化测试表失败: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// createTestUser 创建测试用户
func createTestUser(t *testing.T, db *gorm.DB, username string, admin bool) *model.User {
	t.Helper()

	user := &model.User{
		Fullname: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
		Username: username,
		Admin:    admin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// createTestBlog 创建测试博客
func createTestBlog(t *testing.T, db *gorm.DB, author *model.User, title string, draft bool) *model.Blog {
	t.Helper()

	blog := &model.Blog{
		Slug:        generateSlug(title),
		Title:       title,
		Description: "测试博客简介",
		Banner:      "https://example.com/banner.jpg",
		Content:     []model.ContentBlock{{Type: "paragraph", Data: map[string]any{"text": "正文"}}},
		Tags:        []string{"test"},
		Draft:       draft,
		AuthorID:    author.ID,
	}
	if err := db.Create(blog).Error; err != nil {
		t.Fatalf("创建测试博客失败: %v", err)
	}
	return blog
}

// getBlog 重新读取博客最新状态
func getBlog(t *testing.T, db *gorm.DB, id uint) *model.Blog {
	t.Helper()

	var blog model.Blog
	if err := db.First(&blog, id).Error; err != nil {
		t.Fatalf("查询博客失败: %v", err)
	}
	return &blog
}
