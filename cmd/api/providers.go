package main

import (
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/jwt"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// provideLoggerOptions 配置 → 日志选项
// pkg/logger不依赖internal/config,由这里转换
func provideLoggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	}
}

// provideJWTManager 从配置创建JWT管理器
// 未开启认证时返回nil
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	if !cfg.JWT.Enabled {
		return nil
	}
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer)
}

// provideAuthMiddleware 创建认证中间件
func provideAuthMiddleware(cfg *config.Config, jwtManager *jwt.Manager) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtManager, cfg.JWT.Enabled)
}
