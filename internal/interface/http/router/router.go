package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
)

// aiScope AI接口的限流范围
const aiScope = "ai"

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Book   *handler.BookHandler
	Review *handler.ReviewHandler
	Health *handler.HealthHandler
}

// New 创建Gin引擎并注册路由
// 中间件顺序: RequestID → Recovery → AccessLog → Metrics → 业务Handler
// 写接口挂RequireAuth,AI接口挂RateLimit
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware, limiter middleware.Limiter) *gin.Engine {
	setMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.AccessLog())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", h.Health.Ping)
	r.GET("/health", h.Health.Health)

	// Swagger文档(仅debug模式)
	if cfg.Server.Mode == gin.DebugMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	aiLimit := middleware.RateLimit(limiter, aiScope)

	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", requireAuth, h.Book.CreateBook)
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.PUT("/:id", requireAuth, h.Book.UpdateBook)
			books.DELETE("/:id", requireAuth, h.Book.DeleteBook)

			// 评论
			books.POST("/:id/reviews", requireAuth, h.Review.CreateReview)
			books.GET("/:id/reviews", h.Review.ListBookReviews)
			books.GET("/:id/reviews/statistics", h.Review.GetStatistics)
			books.GET("/:id/rating", h.Review.GetRating)

			// 摘要
			books.GET("/:id/summary", h.Book.GetSummary)
			books.GET("/:id/ai-summary", aiLimit, h.Book.GetAISummary)
			books.GET("/:id/reviews/summary", aiLimit, h.Review.SummarizeReviews)
		}

		v1.GET("/reviews/:id", h.Review.GetReview)
		v1.GET("/users/:id/reviews", h.Review.ListUserReviews)
		v1.GET("/recommendations", h.Book.Recommendations)
		v1.POST("/generate-summary", aiLimit, h.Book.GenerateSummary)
	}

	return r
}

func setMode(mode string) {
	switch mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
