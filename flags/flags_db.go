package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/inkwell-blog/inkwell-api/internal/database"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// DB 执行数据库迁移建表
func DB(c *cli.Context) error {
	db := database.GetDB()
	if err := model.InitTables(db); err != nil {
		logger.GetSugaredLogger().Errorf("建表失败: %v", err)
		return err
	}
	logger.GetSugaredLogger().Info("建表成功")
	return nil
}
