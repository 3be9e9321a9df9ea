package service

import "errors"

// 业务错误哨兵，由controller层映射为HTTP状态码
var (
	// ErrValidation 请求参数非法
	ErrValidation = errors.New("参数无效")
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrUnauthorized 未认证
	ErrUnauthorized = errors.New("未认证")
	// ErrForbidden 无操作权限
	ErrForbidden = errors.New("没有权限")
	// ErrConflict 唯一性冲突
	ErrConflict = errors.New("资源冲突")
)
