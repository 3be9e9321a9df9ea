package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell-api/internal/logger"
	"github.com/inkwell-blog/inkwell-api/internal/service"
	"github.com/inkwell-blog/inkwell-api/pkg/response"
)

// ImageApi 图片API控制器
type ImageApi struct {
	logger       *zap.SugaredLogger
	imageService *service.ImageService
}

// NewImageApi 创建图片API控制器
func NewImageApi() *ImageApi {
	return &ImageApi{
		logger:       logger.GetSugaredLogger(),
		imageService: service.NewImageService(),
	}
}

// UploadURL 签发图片直传URL
func (api *ImageApi) UploadURL(c *gin.Context) {
	resp, err := api.imageService.GenerateUploadURL(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "签发上传地址失败")
		return
	}
	response.Success(c, "签发成功", resp)
}
