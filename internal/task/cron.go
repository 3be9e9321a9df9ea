package task

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/service"
)

// Init 启动定时任务
// 每天凌晨3点清理30天前的已读通知。
func Init(db *gorm.DB) *cron.Cron {
	c := cron.New(cron.WithSeconds(), cron.WithLocation(time.Local))

	notificationService := service.NewNotificationService(db)
	c.AddFunc("0 0 3 * * *", func() {
		if err := notificationService.CleanupSeen(30); err != nil {
			logger.Errorf("清理过期通知失败: %v", err)
		}
	})

	c.Start()
	return c
}
