package model

// User 用户模型
type User struct {
	Base
	Fullname   string `gorm:"type:varchar(100);not null" json:"fullname"`
	Email      string `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Password   string `gorm:"type:varchar(100)" json:"-"` // Google登录账号为空
	Username   string `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Bio        string `gorm:"type:varchar(200)" json:"bio"`
	Avatar     string `gorm:"type:varchar(255)" json:"avatar"`
	GoogleAuth bool   `gorm:"not null;default:false" json:"google_auth"`
	Admin      bool   `gorm:"not null;default:false" json:"admin"`

	// 社交链接
	Youtube   string `gorm:"type:varchar(255)" json:"youtube"`
	Instagram string `gorm:"type:varchar(255)" json:"instagram"`
	Facebook  string `gorm:"type:varchar(255)" json:"facebook"`
	Twitter   string `gorm:"type:varchar(255)" json:"twitter"`
	Github    string `gorm:"type:varchar(255)" json:"github"`
	Website   string `gorm:"type:varchar(255)" json:"website"`

	// 冗余计数
	TotalPosts int64 `gorm:"not null;default:0" json:"total_posts"`
	TotalReads int64 `gorm:"not null;default:0" json:"total_reads"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
