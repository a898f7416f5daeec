package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// NewClient 创建Redis客户端
// 设计说明:
// 1. 配置连接池参数(PoolSize、MinIdleConns)
// 2. 配置超时参数(DialTimeout、ReadTimeout、WriteTimeout)
// 3. redis.enabled=false时返回nil,调用方退回进程内限流
// 4. 启用时测试连接可用性
func NewClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.L().Info("Redis未启用,AI接口使用进程内限流")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	logger.L().Info("Redis连接成功", zap.String("addr", cfg.Redis.Addr()))
	return client, nil
}
