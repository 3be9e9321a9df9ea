package flags

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/inkwell-blog/inkwell-api/internal/logger"
)

// Newflags 解析命令行子命令，存在子命令时执行后退出
func Newflags() {
	var app = cli.NewApp()
	app.Name = "inkwell-api"
	app.Usage = "博客平台后端服务"
	app.Commands = []*cli.Command{
		{
			Name:    "database",
			Aliases: []string{"db"},
			Usage:   "建表",
			Action:  DB,
		},
		{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "创建管理员用户",
			Action:  User,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "fullname",
					Aliases: []string{"n"},
					Usage:   "用户姓名",
					Value:   "admin",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "用户邮箱",
					Value:   "admin@example.com",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "用户密码",
					Value:   "admin123456",
				},
			},
		},
	}
	if len(os.Args) > 1 {
		err := app.Run(os.Args)
		if err != nil {
			logger.GetSugaredLogger().Fatalf("执行命令失败: %v", err)
		}
		os.Exit(0)
	}
}
