package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（HTTP状态码由HTTPStatus根据Code推导）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按业务错误码比较
// 预定义错误是指针，WithCause产生的副本也需要被errors.Is识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WithCause 基于预定义错误附加内部原因（错误码与提示不变）
func WithCause(base *AppError, err error) *AppError {
	return &AppError{
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal         = 50000 // 内部错误
	ErrCodeDatabaseError    = 50001 // 数据库错误
	ErrCodeRedisError       = 50002 // Redis错误
	ErrCodeGenerationFailed = 50003 // AI生成失败

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized = 40100 // 未登录
	ErrCodeInvalidToken = 40101 // Token无效
	ErrCodeTokenExpired = 40102 // Token过期

	// 资源错误（40400-40499）
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeReviewNotFound = 40405 // 评论不存在

	// 业务规则错误（40000-40099）
	ErrCodeDuplicateEntry = 40009 // 重复记录(通用)

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900 // 请求过于频繁

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal         = New(ErrCodeInternal, "系统内部错误")
	ErrGenerationFailed = New(ErrCodeGenerationFailed, "AI摘要生成失败")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Token已过期")

	// 限流
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "请求过于频繁，请稍后再试")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HTTPStatus 业务错误码 → HTTP状态码
// 边界层唯一关心HTTP状态码的地方
func HTTPStatus(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code == ErrCodeDuplicateEntry:
		return http.StatusConflict
	case code == ErrCodeGenerationFailed:
		return http.StatusBadGateway
	case code/100 == 401:
		return http.StatusUnauthorized
	case code/100 == 404:
		return http.StatusNotFound
	case code/100 == 429:
		return http.StatusTooManyRequests
	case code/100 == 400, code/100 == 409:
		return http.StatusBadRequest
	case code >= 50000:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
