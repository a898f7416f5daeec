// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、图书创建总数、限流拒绝总数
//   - 特点：只能调用Inc()递增
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数、熔断器状态
//   - 特点：可以调用Inc()、Dec()、Set()
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、AI摘要生成耗时
//   - 特点：服务端用histogram_quantile计算P50、P90、P99
//
// # 使用示例
//
//	// 1. 启动时初始化
//	metrics.InitMetrics()
//
//	// 2. gin路由暴露/metrics端点
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录指标
//	start := time.Now()
//	text, err := generator.Generate(ctx, prompt, 200, 0.5)
//	metrics.ObserveHistogramVec(metrics.SummaryGenerationDuration,
//	    map[string]string{"kind": "book"}, time.Since(start).Seconds())
//
// # 常见指标命名规范
//
// 1. **Counter**: 以`_total`结尾（`books_created_total`）
// 2. **Histogram**: 以单位结尾（`summary_generation_duration_seconds`）
// 3. **Gauge**: 描述当前状态（`circuit_breaker_state`）
//
// 避免高基数标签：path标签使用gin的路由模板（/api/v1/books/:id），不使用原始URL。
//
// 便捷函数都允许指标为nil（未调用InitMetrics时直接忽略），
// 单元测试不需要初始化全局Registry。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BooksCreatedTotal 图书创建总数（Counter）
	BooksCreatedTotal prometheus.Counter

	// ReviewsCreatedTotal 评论创建总数（Counter）
	ReviewsCreatedTotal prometheus.Counter

	// SummaryGenerationsTotal AI摘要生成次数（Counter）
	// 标签：kind（text/book/reviews）、result（success/failure）
	SummaryGenerationsTotal *prometheus.CounterVec

	// SummaryGenerationDuration AI摘要生成耗时（Histogram）
	SummaryGenerationDuration *prometheus.HistogramVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 限流指标

	// RateLimitRejectedTotal 被限流拒绝的请求数（Counter）
	// 标签：scope（限流范围，如ai）
	RateLimitRejectedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. sync.Once保证只注册一次（重复注册会panic）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 图书/评论业务指标
	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_created_total",
			Help: "图书创建总数",
		},
	)

	ReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "评论创建总数",
		},
	)

	// AI摘要指标
	SummaryGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_generations_total",
			Help: "AI摘要生成次数",
		},
		[]string{"kind", "result"},
	)

	SummaryGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "summary_generation_duration_seconds",
			Help: "AI摘要生成耗时（秒）",
			// 模型推理通常在秒级
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 限流指标
	RateLimitRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejected_total",
			Help: "被限流拒绝的请求数",
		},
		[]string{"scope"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
