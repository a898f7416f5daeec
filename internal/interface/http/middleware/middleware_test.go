package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLocalLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("突发容量用完后拒绝", func(t *testing.T) {
		l := NewLocalLimiter(rate.Every(time.Hour), 2, time.Minute)
		for i := 0; i < 2; i++ {
			ok, err := l.Allow(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, _ := l.Allow(ctx, "a")
		assert.False(t, ok)

		// 不同key互不影响
		ok, _ = l.Allow(ctx, "b")
		assert.True(t, ok)
	})

	t.Run("长时间未访问的key被清理", func(t *testing.T) {
		now := time.Now()
		l := NewLocalLimiter(rate.Every(time.Hour), 1, time.Minute)
		l.now = func() time.Time { return now }

		_, _ = l.Allow(ctx, "a")
		_, _ = l.Allow(ctx, "b")
		assert.Len(t, l.visitors, 2)

		now = now.Add(2 * time.Minute)
		_, _ = l.Allow(ctx, "c")
		assert.Len(t, l.visitors, 1)
		assert.Contains(t, l.visitors, "c")
	})
}

func TestNewLimiter(t *testing.T) {
	cfg := &config.Config{RateLimit: config.RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute}}

	t.Run("未开启", func(t *testing.T) {
		assert.Nil(t, NewLimiter(&config.Config{}, nil))
	})

	t.Run("没有Redis使用进程内令牌桶", func(t *testing.T) {
		l, ok := NewLimiter(cfg, nil).(*LocalLimiter)
		require.True(t, ok)
		assert.Equal(t, 10, l.burst)
	})

	t.Run("有Redis使用固定窗口", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		_, ok := NewLimiter(cfg, client).(*redis.FixedWindowLimiter)
		assert.True(t, ok)
	})
}

// errLimiter 模拟限流后端故障
type errLimiter struct{}

func (errLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func serve(handlers ...gin.HandlerFunc) int {
	r := gin.New()
	r.GET("/x", append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })...)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("nil限流器放行", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve(RateLimit(nil, "ai")))
	})

	t.Run("后端故障放行", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve(RateLimit(errLimiter{}, "ai")))
	})

	t.Run("超限返回429", func(t *testing.T) {
		mw := RateLimit(NewLocalLimiter(rate.Every(time.Hour), 1, time.Minute), "ai")
		assert.Equal(t, http.StatusNoContent, serve(mw))
		assert.Equal(t, http.StatusTooManyRequests, serve(mw))
	})
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("secret", "")
	token, err := manager.GenerateToken(9, time.Hour)
	require.NoError(t, err)

	call := func(m *AuthMiddleware, header string) (int, uint) {
		var got uint
		r := gin.New()
		r.GET("/x", m.RequireAuth(), func(c *gin.Context) {
			got = GetUserID(c)
			c.Status(http.StatusNoContent)
		})
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code, got
	}

	t.Run("未开启认证直接放行", func(t *testing.T) {
		code, uid := call(NewAuthMiddleware(manager, false), "")
		assert.Equal(t, http.StatusNoContent, code)
		assert.Zero(t, uid)
	})

	t.Run("合法Token注入用户ID", func(t *testing.T) {
		code, uid := call(NewAuthMiddleware(manager, true), "Bearer "+token)
		assert.Equal(t, http.StatusNoContent, code)
		assert.Equal(t, uint(9), uid)
	})

	t.Run("非法Token", func(t *testing.T) {
		code, _ := call(NewAuthMiddleware(manager, true), "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _ = call(NewAuthMiddleware(manager, true), "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
