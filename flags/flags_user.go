package flags

import (
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell-api/internal/database"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
)

// User 创建管理员用户
func User(c *cli.Context) error {
	fullname := c.String("fullname")
	email := strings.ToLower(c.String("email"))
	password := c.String("password")

	log := logger.GetSugaredLogger()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("密码加密失败: %v", err)
		return err
	}

	user := &model.User{
		Fullname: fullname,
		Email:    email,
		Password: string(hashed),
		Username: strings.Split(email, "@")[0],
		Admin:    true,
	}
	if err := database.GetDB().Create(user).Error; err != nil {
		log.Errorf("创建管理员失败: %v", err)
		return err
	}

	log.Infof("管理员%s创建成功, email:%s", fullname, email)
	return nil
}
