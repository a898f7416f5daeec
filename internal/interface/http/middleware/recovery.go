package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Recovery panic恢复中间件
// 替代gin.Recovery():panic写入zap日志(带堆栈),响应统一为50000
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c.Request.Context()).Error("请求处理panic",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				response.ErrorWithCode(c, apperrors.ErrCodeInternal, apperrors.ErrInternal.Message)
				c.Abort()
			}
		}()
		c.Next()
	}
}
