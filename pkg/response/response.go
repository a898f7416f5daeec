package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，HTTP状态码由apperrors.HTTPStatus(Code)推导
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（HTTP 201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	b, err := h.createBook.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	// 记录详细错误到日志（包含内部错误）
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("请求处理失败",
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	// 返回用户友好的错误信息
	c.JSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 偏移量分页数据封装（skip/limit）
type PageData struct {
	List  interface{} `json:"list"`  // 数据列表
	Skip  int         `json:"skip"`  // 跳过条数
	Limit int         `json:"limit"` // 本页上限
	Count int         `json:"count"` // 本页实际条数
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, count, skip, limit int) *PageData {
	return &PageData{
		List:  list,
		Skip:  skip,
		Limit: limit,
		Count: count,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, count, skip, limit int) {
	Success(c, NewPageData(list, count, skip, limit))
}
