package dto

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Fullname string `json:"fullname" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwdstrength"`
}

// LoginRequest 用户登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest Google登录请求
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// LogoutRequest 登出请求
// 刷新令牌从Authorization头获取，访问令牌可随请求体一并吊销。
type LogoutRequest struct {
	AccessToken string `json:"access_token"`
}

// ChangePasswordRequest 密码修改请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwdstrength"`
}

// ProfileUpdateRequest 个人资料更新请求
type ProfileUpdateRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Bio       string `json:"bio" binding:"omitempty,max=200"`
	Youtube   string `json:"youtube" binding:"omitempty,url"`
	Instagram string `json:"instagram" binding:"omitempty,url"`
	Facebook  string `json:"facebook" binding:"omitempty,url"`
	Twitter   string `json:"twitter" binding:"omitempty,url"`
	Github    string `json:"github" binding:"omitempty,url"`
	Website   string `json:"website" binding:"omitempty,url"`
}

// AvatarUpdateRequest 头像更新请求
type AvatarUpdateRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// UserSearchRequest 用户搜索请求
type UserSearchRequest struct {
	Query string `form:"query" binding:"required"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	ID           uint   `json:"id"`
	Fullname     string `json:"fullname"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	Admin        bool   `json:"admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// UserInfo 用户公开信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	UserInfo
	Bio        string            `json:"bio"`
	GoogleAuth bool              `json:"google_auth"`
	TotalPosts int64             `json:"total_posts"`
	TotalReads int64             `json:"total_reads"`
	Social     map[string]string `json:"social_links"`
	JoinedAt   string            `json:"joined_at"`
}
