package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFixedWindowLimiter(client, limit, window), mr
}

func TestFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("窗口内超过配额被拒绝", func(t *testing.T) {
		l, _ := newTestLimiter(t, 3, time.Minute)
		base := time.Unix(1_700_000_000, 0)
		l.now = func() time.Time { return base }

		for i := 0; i < 3; i++ {
			ok, err := l.Allow(ctx, "ai:10.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok, "第%d次请求应放行", i+1)
		}
		ok, err := l.Allow(ctx, "ai:10.0.0.1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("不同客户端独立计数", func(t *testing.T) {
		l, _ := newTestLimiter(t, 1, time.Minute)
		ok, _ := l.Allow(ctx, "ai:a")
		assert.True(t, ok)
		ok, _ = l.Allow(ctx, "ai:b")
		assert.True(t, ok)
		ok, _ = l.Allow(ctx, "ai:a")
		assert.False(t, ok)
	})

	t.Run("新窗口重新计数", func(t *testing.T) {
		l, _ := newTestLimiter(t, 1, time.Minute)
		now := time.Unix(1_700_000_000, 0)
		l.now = func() time.Time { return now }

		ok, _ := l.Allow(ctx, "ai:c")
		assert.True(t, ok)
		ok, _ = l.Allow(ctx, "ai:c")
		assert.False(t, ok)

		now = now.Add(time.Minute)
		ok, _ = l.Allow(ctx, "ai:c")
		assert.True(t, ok)
	})

	t.Run("计数Key带过期时间", func(t *testing.T) {
		l, mr := newTestLimiter(t, 5, time.Minute)
		_, err := l.Allow(ctx, "ai:d")
		require.NoError(t, err)

		keys := mr.Keys()
		require.Len(t, keys, 1)
		assert.Equal(t, time.Minute, mr.TTL(keys[0]))

		mr.FastForward(2 * time.Minute)
		assert.Empty(t, mr.Keys())
	})

	t.Run("Redis不可用返回Redis错误", func(t *testing.T) {
		l, mr := newTestLimiter(t, 5, time.Minute)
		mr.Close()

		_, err := l.Allow(ctx, "ai:e")
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrCodeRedisError, appErr.Code)
	})
}

func TestNewClientDisabled(t *testing.T) {
	client, err := NewClient(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, client)
}
