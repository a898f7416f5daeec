package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// FixedWindowLimiter 基于Redis的固定窗口限流器
// 设计说明:
// 1. Key设计: ratelimit:{scope}:{client}:{window序号}
// 2. INCR计数,每次计数刷新EXPIRE,窗口结束后Key自动清理
// 3. 计数保存在Redis中,多个API实例共享同一个配额
//
// 学习要点:
// - INCR+EXPIRE放在同一个Pipeline(MULTI/EXEC)里,不会出现有计数没过期时间的Key
// - 固定窗口在窗口边界可能放过2倍请求,对AI接口的保护足够
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewFixedWindowLimiter 创建固定窗口限流器
func NewFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
		now:    time.Now,
	}
}

// Allow 判断key在当前窗口内是否还有配额
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, &apperrors.AppError{
			Code:    apperrors.ErrCodeRedisError,
			Message: "限流计数失败",
			Err:     err,
		}
	}

	return incr.Val() <= int64(l.limit), nil
}
