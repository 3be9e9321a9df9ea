package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-api/flags"
	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/internal/database"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/middleware"
	"github.com/inkwell-blog/inkwell-api/internal/router"
	"github.com/inkwell-blog/inkwell-api/internal/task"
	"github.com/inkwell-blog/inkwell-api/internal/validate"
)

func main() {
	// 初始化配置
	if err := config.Init("."); err != nil {
		panic(err)
	}
	// 初始化日志
	logger.InitLogger(&config.GlobalConfig.Log)
	defer logger.Sync()

	log := logger.GetSugaredLogger()

	// 初始化数据库
	db := database.GetDB()

	// JWT黑名单用redis时提前建立连接
	if config.GlobalConfig.JWT.Blacklist == "redis" {
		database.GetRedis()
	}

	// 注册自定义校验规则
	if err := validate.Init(); err != nil {
		log.Fatalf("注册校验规则失败: %v", err)
	}

	// 命令行子命令，执行后退出
	flags.Newflags()

	// 启动定时任务
	task.Init(db)

	// 初始化路由
	gin.SetMode(config.GlobalConfig.App.Mode)
	r := gin.New()
	r.Use(logger.GinLogger(), gin.Recovery(), middleware.Cors())
	router.Setup(r, db)

	// 启动服务
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.App.Port)); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
