package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
)

var (
	db    *gorm.DB
	dbOne sync.Once
)

// InitMySQL 初始化MySQL连接并配置连接池
// 评论、通知的级联删除由服务层事务负责，迁移时不建外键。
func InitMySQL(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	dsn := cfg.DSN()

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err = gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接池失败: %v", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %v", err)
	}

	logger.Info("MySQL数据库连接成功")
	return db, nil
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	var err error
	dbOne.Do(func() {
		db, err = InitMySQL(&config.GlobalConfig.MySQL)
		if err != nil {
			panic(fmt.Sprintf("MySQL数据库初始化失败: %v", err))
		}
	})
	return db
}
