package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const tracerName = "bookshelf/llm"

// generateRequest Ollama /api/generate 请求体
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

// generateResponse 非流式响应,只关心response字段
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// HTTPGenerator 兼容Ollama的文本生成客户端
// 设计说明:
// 1. 每次调用一个HTTP请求(stream=false),超时来自llm.timeout
// 2. 外层包一个熔断器:模型服务持续失败时快速失败,不再占用请求线程
// 3. 每次调用一个OpenTelemetry Span,熔断器状态导出到Prometheus
// 4. 不做重试,失败由summary.Service统一折叠为ErrGenerationFailed
type HTTPGenerator struct {
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
}

// NewHTTPGenerator 创建HTTP文本生成客户端
func NewHTTPGenerator(cfg config.LLMConfig) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/api/generate",
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		client:   &http.Client{},
		breaker:  newBreaker("llm-"+cfg.Model, cfg),
	}
}

// Generate 生成文本
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "llm.Generate")
	span.SetAttributes(
		attribute.String("llm.model", g.model),
		attribute.Int("llm.max_tokens", maxTokens),
		attribute.Float64("llm.temperature", temperature),
	)
	defer func() { tracing.EndSpan(span, err) }()

	name := g.breaker.Name()
	text, err = g.breaker.Execute(func() (string, error) {
		return g.call(ctx, prompt, maxTokens, temperature)
	})
	if err != nil {
		result := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "rejected"
		}
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": name, "result": result})
		return "", err
	}

	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": name, "result": "success"})
	return text, nil
}

// call 发送一次/api/generate请求
func (g *HTTPGenerator) call(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// 1. 编码请求
	body, err := json.Marshal(generateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			NumPredict:  maxTokens,
			Temperature: temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("编码请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 2. 发送请求
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("调用模型服务失败: %w", err)
	}
	defer resp.Body.Close()

	// 3. 非200时带上部分响应体,便于排查
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("模型服务返回状态码%d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	// 4. 解码响应
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("解码模型响应失败: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("模型服务错误: %s", out.Error)
	}
	return out.Response, nil
}

// newBreaker 创建熔断器
// 统计周期内请求数达到MinRequests且失败率达到FailureRatio时打开
func newBreaker(name string, cfg config.LLMConfig) *gobreaker.CircuitBreaker[string] {
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, stateToFloat(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, stateToFloat(to))
		},
	})
}

// stateToFloat 熔断器状态转指标值(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return -1
	}
}
