package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping 存活检查
// @Summary  存活检查
// @Tags     系统
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}

// Health 就绪检查(包含数据库连通性)
// @Summary  健康检查
// @Tags     系统
// @Produce  json
// @Success  200 {object} response.Response
// @Failure  500 {object} response.Response "数据库不可用"
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.pingDB(c.Request.Context()); err != nil {
		logger.FromContext(c.Request.Context()).Error("数据库健康检查失败", zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrCodeDatabaseError, "数据库不可用")
		return
	}
	response.Success(c, gin.H{
		"status":  "ok",
		"message": "Book Management API is running",
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
