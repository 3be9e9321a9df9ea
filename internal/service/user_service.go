package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/model"
	"github.com/inkwell-blog/inkwell-api/pkg/auth"
)

// googleTokenInfo Google tokeninfo 接口响应
type googleTokenInfo struct {
	Aud     string `json:"aud"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// UserService 用户服务
type UserService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger

	// 校验Google凭证，测试中可替换
	verifyGoogleToken func(idToken string) (*googleTokenInfo, error)
}

// NewUserService 创建用户服务实例
func NewUserService(db *gorm.DB) *UserService {
	s := &UserService{
		db:     db,
		logger: logger.GetSugaredLogger(),
	}
	s.verifyGoogleToken = s.verifyGoogleTokenHTTP
	return s
}

// Register 注册用户
func (s *UserService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: 邮箱已被注册", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	username, err := s.uniqueUsername(email)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Fullname: req.Fullname,
		Email:    email,
		Password: string(hashed),
		Username: username,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

// uniqueUsername 取邮箱前缀作用户名，冲突时追加随机后缀
func (s *UserService) uniqueUsername(email string) (string, error) {
	base := strings.Split(email, "@")[0]

	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", base).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return base + "-" + uuid.New().String()[:6], nil
}

// Login 邮箱密码登录
func (s *UserService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 邮箱或密码错误", ErrUnauthorized)
		}
		return nil, err
	}

	// Google账号没有本地密码
	if user.GoogleAuth {
		return nil, fmt.Errorf("%w: 该账号通过Google注册，请使用Google登录", ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: 邮箱或密码错误", ErrUnauthorized)
	}

	return s.buildAuthResponse(&user)
}

// GoogleLogin Google凭证登录，首次登录自动注册
func (s *UserService) GoogleLogin(req *dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	info, err := s.verifyGoogleToken(req.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: Google凭证校验失败", ErrUnauthorized)
	}
	if config.GlobalConfig.Google.ClientID != "" && info.Aud != config.GlobalConfig.Google.ClientID {
		return nil, fmt.Errorf("%w: Google凭证不属于本应用", ErrUnauthorized)
	}

	email := strings.ToLower(info.Email)

	var user model.User
	err = s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.GoogleAuth {
			return nil, fmt.Errorf("%w: 该邮箱已使用密码注册，请用密码登录", ErrConflict)
		}
		return s.buildAuthResponse(&user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username, err := s.uniqueUsername(email)
	if err != nil {
		return nil, err
	}

	user = model.User{
		Fullname:   info.Name,
		Email:      email,
		Username:   username,
		Avatar:     strings.Replace(info.Picture, "s96-c", "s384-c", 1),
		GoogleAuth: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return s.buildAuthResponse(&user)
}

// verifyGoogleTokenHTTP 调用Google tokeninfo接口校验凭证
func (s *UserService) verifyGoogleTokenHTTP(idToken string) (*googleTokenInfo, error) {
	endpoint := config.GlobalConfig.Google.TokenInfoURL
	if endpoint == "" {
		endpoint = "https://oauth2.googleapis.com/tokeninfo"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(endpoint + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo返回状态码 %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("tokeninfo响应缺少email")
	}
	return &info, nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(userID uint, req *dto.ChangePasswordRequest) error {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return err
	}

	if user.GoogleAuth {
		return fmt.Errorf("%w: Google账号无法修改密码", ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: 当前密码错误", ErrUnauthorized)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password", string(hashed)).Error
}

// UpdateProfile 更新个人资料
func (s *UserService) UpdateProfile(userID uint, req *dto.ProfileUpdateRequest) error {
	if req.Username != "" {
		var count int64
		err := s.db.Model(&model.User{}).
			Where("username = ? AND id <> ?", req.Username, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: 用户名已被占用", ErrConflict)
		}
	}

	updates := map[string]interface{}{
		"bio":       req.Bio,
		"youtube":   req.Youtube,
		"instagram": req.Instagram,
		"facebook":  req.Facebook,
		"twitter":   req.Twitter,
		"github":    req.Github,
		"website":   req.Website,
	}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	return s.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

// UpdateAvatar 更新头像
func (s *UserService) UpdateAvatar(userID uint, avatarURL string) error {
	return s.db.Model(&model.User{}).Where("id = ?", userID).Update("avatar", avatarURL).Error
}

// GetProfile 按用户名查询公开资料
func (s *UserService) GetProfile(username string) (*dto.ProfileResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}
	resp := convertToProfile(&user)
	return &resp, nil
}

// SearchUsers 按用户名模糊搜索
func (s *UserService) SearchUsers(req *dto.UserSearchRequest) ([]dto.ProfileResponse, error) {
	var users []model.User
	err := s.db.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(req.Query)+"%").
		Limit(50).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	list := make([]dto.ProfileResponse, 0, len(users))
	for i := range users {
		list = append(list, convertToProfile(&users[i]))
	}
	return list, nil
}

// buildAuthResponse 签发令牌并组装登录响应
func (s *UserService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	pair, err := auth.GenerateTokenPair(user.ID, user.Admin)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		ID:           user.ID,
		Fullname:     user.Fullname,
		Username:     user.Username,
		Avatar:       user.Avatar,
		Admin:        user.Admin,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    config.GlobalConfig.JWT.AccessExpireSeconds,
	}, nil
}

// convertToProfile 转换为公开资料DTO
func convertToProfile(user *model.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserInfo: dto.UserInfo{
			ID:       user.ID,
			Fullname: user.Fullname,
			Username: user.Username,
			Avatar:   user.Avatar,
		},
		Bio:        user.Bio,
		GoogleAuth: user.GoogleAuth,
		TotalPosts: user.TotalPosts,
		TotalReads: user.TotalReads,
		Social: map[string]string{
			"youtube":   user.Youtube,
			"instagram": user.Instagram,
			"facebook":  user.Facebook,
			"twitter":   user.Twitter,
			"github":    user.Github,
			"website":   user.Website,
		},
		JoinedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
