package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/pkg/logger"
)

// RequestIDHeader 请求ID的HTTP头
const RequestIDHeader = "X-Request-ID"

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = 3 * time.Second

// RequestID 请求ID中间件
// 1. 优先沿用上游传入的X-Request-ID,没有则生成uuid
// 2. 写回响应头,并把带request_id字段的logger放进请求Context
// 后续Handler、用例通过logger.FromContext(ctx)拿到同一个logger
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		l := logger.L().With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		c.Next()
	}
}

// AccessLog 请求日志中间件
// 记录方法、路径、状态码、耗时、客户端IP;不记录请求体和Authorization
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 记录开始时间
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// 步骤2: 处理请求
		c.Next()

		// 步骤3: 记录请求信息
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		l := logger.FromContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Error("HTTP请求", fields...)
		case latency > slowRequestThreshold:
			l.Warn("慢请求", fields...)
		default:
			l.Info("HTTP请求", fields...)
		}
	}
}
