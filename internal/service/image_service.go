package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell-api/internal/config"
	"github.com/inkwell-blog/inkwell-api/internal/dto"
	"github.com/inkwell-blog/inkwell-api/internal/logger"
)

// ImageService 图片上传服务
// 只负责签发直传URL，文件由客户端直接上传到对象存储。
type ImageService struct {
	logger *zap.SugaredLogger
}

// NewImageService 创建图片服务实例
func NewImageService() *ImageService {
	return &ImageService{
		logger: logger.GetSugaredLogger(),
	}
}

// GenerateUploadURL 签发预签名PUT上传地址
func (s *ImageService) GenerateUploadURL(ctx context.Context) (*dto.UploadURLResponse, error) {
	cfg := config.GlobalConfig.COS
	if cfg.BucketURL == "" {
		return nil, fmt.Errorf("%w: 对象存储未配置", ErrValidation)
	}

	bucketURL, err := url.Parse(cfg.BucketURL)
	if err != nil {
		return nil, err
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})

	key := fmt.Sprintf("images/%s-%d.jpeg", uuid.New().String(), time.Now().UnixNano())
	ttl := time.Duration(cfg.UploadExpireSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	presigned, err := client.Object.GetPresignedURL(
		ctx, http.MethodPut, key, cfg.SecretID, cfg.SecretKey, ttl, nil)
	if err != nil {
		s.logger.Errorf("签发上传地址失败: %v", err)
		return nil, err
	}

	return &dto.UploadURLResponse{
		UploadURL: presigned.String(),
		FileURL:   cfg.BucketURL + "/" + key,
		Key:       key,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}
