package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/summary"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/llm"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入，wire.go给出了等价的Wire Injector
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	l, err := logger.Init(provideLoggerOptions(cfg))
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = l.Sync() }()

	l.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.String("llm", cfg.LLM.Provider),
	)

	if err := run(cfg); err != nil {
		l.Fatal("服务异常退出", zap.Error(err))
	}
}

// run 组装依赖并启动HTTP服务,收到SIGINT/SIGTERM后优雅关闭
func run(cfg *config.Config) error {
	// 1. 可观测性
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.L().Warn("关闭Tracer失败", zap.Error(err))
			}
		}()
	}

	// 2. 数据库
	db, err := sqlstore.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}
	defer closeDB(db)

	// 3. Redis(可选,仅用于限流)
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("初始化Redis失败: %w", err)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// 4. 文本生成后端
	generator, err := llm.New(cfg)
	if err != nil {
		return fmt.Errorf("初始化文本生成后端失败: %w", err)
	}

	// 5. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler
	engine := newEngine(cfg, db, generator, middleware.NewLimiter(cfg, redisClient))

	// 6. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 7. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.L().Info("收到退出信号,开始优雅关闭", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	logger.L().Info("服务已停止")
	return nil
}

// newEngine 组装仓储、领域服务、用例和处理器
func newEngine(cfg *config.Config, db *gorm.DB, generator summary.Generator, limiter middleware.Limiter) *gin.Engine {
	// 基础设施层
	txManager := sqlstore.NewTxManager(db)
	bookRepo := sqlstore.NewBookRepository(db)
	reviewRepo := sqlstore.NewReviewRepository(db)

	// 领域层
	bookService := book.NewService(bookRepo)
	reviewService := review.NewService(reviewRepo)
	summaryService := summary.NewService(generator)

	// 应用层
	queryBooks := appbook.NewQueryBooksUseCase(bookService)

	// 接口层
	handlers := &router.Handlers{
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookService, summaryService, txManager),
			appbook.NewUpdateBookUseCase(bookService, txManager),
			appbook.NewDeleteBookUseCase(bookService, txManager),
			queryBooks,
			appbook.NewBookSummaryUseCase(bookService, reviewService, summaryService),
		),
		Review: handler.NewReviewHandler(
			appreview.NewCreateReviewUseCase(bookService, reviewService, txManager),
			appreview.NewQueryReviewsUseCase(bookService, reviewService),
			appreview.NewReviewInsightsUseCase(bookService, reviewService, summaryService),
			queryBooks,
		),
		Health: handler.NewHealthHandler(db),
	}
	auth := provideAuthMiddleware(cfg, provideJWTManager(cfg))

	return router.New(cfg, handlers, auth, limiter)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
