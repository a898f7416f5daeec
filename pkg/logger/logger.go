package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 日志配置
// 与config.LogConfig字段一一对应（pkg不依赖internal，由调用方转换）
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file.log
	EnableCaller bool
}

type ctxKey struct{}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New 根据配置创建zap Logger
// 设计说明：
// 1. Output为文件路径时使用lumberjack做日志轮转，同时输出到stdout
// 2. Format为console时使用开发环境的可读格式
func New(opts Options) (*zap.Logger, error) {
	// 1. 日志级别
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, err
		}
	}

	// 2. 编码器
	encoderConfig := zap.NewProductionEncoderConfig()
	if opts.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if opts.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// 3. 输出目标
	var core zapcore.Core
	switch opts.Output {
	case "", "stdout":
		core = zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	case "stderr":
		core = zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)
	default:
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.Output,
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		core = zapcore.NewTee(
			zapcore.NewCore(encoder, fileWriter, level),
			zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
		)
	}

	var zapOpts []zap.Option
	if opts.EnableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}
	return zap.New(core, zapOpts...), nil
}

// Init 创建Logger并设置为全局Logger
func Init(opts Options) (*zap.Logger, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	SetGlobal(l)
	return l, nil
}

// SetGlobal 替换全局Logger（测试中可注入zaptest/observer）
func SetGlobal(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// L 返回全局Logger，未初始化时为Nop
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// WithContext 将带请求字段的Logger放入Context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext 从Context取出请求级Logger，没有则返回全局Logger
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return L()
}
