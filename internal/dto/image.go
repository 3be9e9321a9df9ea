package dto

// UploadURLResponse 图片直传URL响应
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}
