package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("stdout+json", func(t *testing.T) {
		l, err := New(Options{Level: "info", Format: "json", Output: "stdout"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("文件输出", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(Options{Level: "debug", Format: "console", Output: path, EnableCaller: true})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
		l.Debug("写入文件")
		_ = l.Sync()
		assert.FileExists(t, path)
	})

	t.Run("非法级别", func(t *testing.T) {
		_, err := New(Options{Level: "verbose"})
		assert.Error(t, err)
	})
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetGlobal(zap.New(core))
	t.Cleanup(func() { SetGlobal(nil) })

	t.Run("无请求Logger时使用全局Logger", func(t *testing.T) {
		FromContext(context.Background()).Info("global")
		assert.Equal(t, 1, logs.FilterMessage("global").Len())
	})

	t.Run("请求Logger携带字段", func(t *testing.T) {
		ctx := WithContext(context.Background(), L().With(zap.String("request_id", "req-1")))
		FromContext(ctx).Info("scoped")

		entries := logs.FilterMessage("scoped").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})
}
