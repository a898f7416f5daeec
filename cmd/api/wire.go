//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire在编译期生成依赖创建代码，零运行时开销
// 2. 运行 `wire gen ./cmd/api` 生成wire_gen.go
// 3. 生成后main.go中的newEngine可以替换为InitializeApp

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/shared"
	"github.com/xiebiao/bookshelf/internal/domain/summary"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/llm"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：数据库连接、Redis连接（可为nil）、文本生成后端
var infrastructureSet = wire.NewSet(
	sqlstore.NewDB,
	redis.NewClient,
	llm.New,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	sqlstore.NewBookRepository,
	sqlstore.NewReviewRepository,
	sqlstore.NewTxManager,
	wire.Bind(new(shared.TxManager), new(*sqlstore.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	review.NewService,
	summary.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewQueryBooksUseCase,
	appbook.NewBookSummaryUseCase,
	appreview.NewCreateReviewUseCase,
	appreview.NewQueryReviewsUseCase,
	appreview.NewReviewInsightsUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideAuthMiddleware,
	middleware.NewLimiter,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewReviewHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 初始化整个应用
// 依赖链：
// *gin.Engine → *router.Handlers → *handler.BookHandler → *appbook.CreateBookUseCase
// → book.Service → book.Repository → *gorm.DB → *config.Config
func InitializeApp(cfg *config.Config) (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		router.New,
	)
	return nil, nil
}
