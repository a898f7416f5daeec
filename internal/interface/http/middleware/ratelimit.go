package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Limiter 按key限流
// 实现:
// - redis.FixedWindowLimiter: 固定窗口计数,多实例共享
// - LocalLimiter: 进程内令牌桶
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewLimiter 根据配置选择限流实现
// 未开启限流返回nil(RateLimit中间件对nil直接放行)
func NewLimiter(cfg *config.Config, client *goredis.Client) Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled || rl.Requests <= 0 || rl.Window <= 0 {
		return nil
	}
	if client != nil {
		return redis.NewFixedWindowLimiter(client, rl.Requests, rl.Window)
	}

	burst := rl.Burst
	if burst <= 0 {
		burst = rl.Requests
	}
	every := rate.Limit(float64(rl.Requests) / rl.Window.Seconds())
	return NewLocalLimiter(every, burst, 3*time.Minute)
}

// visitor 单个key的令牌桶与最后访问时间
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter 进程内按key的令牌桶限流
// 长时间未访问的key在访问时顺带清理,不启动后台goroutine
type LocalLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewLocalLimiter 创建进程内限流器
func NewLocalLimiter(limit rate.Limit, burst int, idleTTL time.Duration) *LocalLimiter {
	return &LocalLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Allow 消耗一个令牌,桶空时返回false
func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// sweep 每个idleTTL周期最多清理一次过期key
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// RateLimit 限流中间件,按 scope:客户端IP 计数
// 1. limiter为nil时不限流
// 2. 限流后端出错时放行并记录日志,不因限流故障拒绝业务请求
// 3. 超限返回42900
func RateLimit(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("限流检查失败,放行请求",
				zap.String("scope", scope),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !allowed {
			metrics.IncCounterVec(metrics.RateLimitRejectedTotal, map[string]string{"scope": scope})
			response.Error(c, apperrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
