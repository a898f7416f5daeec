package summary

import (
	"bytes"
	"context"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// Generator 外部文本生成能力
// infrastructure/llm提供实现(HTTP模型服务或本地占位实现)
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// ErrGenerationFailed AI生成失败
// 所有底层错误(超时、服务不可用、返回为空)统一折叠为这一个错误,原因只写日志
var ErrGenerationFailed = apperrors.ErrGenerationFailed

// 三个调用点的生成参数
const (
	TextMaxTokens     = 250
	TextTemperature   = 0.3
	BookMaxTokens     = 200
	BookTemperature   = 0.5
	ReviewMaxTokens   = 150
	ReviewTemperature = 0.5
)

var (
	textPrompt = template.Must(template.New("text").Parse(
		`Summarize the following text in a few concise sentences:

"""
{{.Text}}
"""

Summary:`))

	bookPrompt = template.Must(template.New("book").Parse(
		`Please provide a concise, one-paragraph summary (around 50-100 words) of the book titled "{{.Title}}":

Book Content:
"""
{{.Content}}
"""

Summary:`))

	reviewPrompt = template.Must(template.New("reviews").Parse(
		`Summarize the key points and overall sentiment from these book reviews:

Reviews:
{{range .Reviews}}- {{.}}
{{end}}
Summary:`))
)

// Service AI摘要领域服务
type Service interface {
	// SummarizeText 任意文本摘要
	SummarizeText(ctx context.Context, text string) (string, error)

	// SummarizeBook 根据书名和内容生成图书摘要
	SummarizeBook(ctx context.Context, title, content string) (string, error)

	// SummarizeReviews 汇总多条评论的要点和整体倾向
	SummarizeReviews(ctx context.Context, reviews []string) (string, error)
}

type service struct {
	generator Generator
}

// NewService 创建AI摘要服务
func NewService(generator Generator) Service {
	return &service{generator: generator}
}

func (s *service) SummarizeText(ctx context.Context, text string) (string, error) {
	prompt, err := render(textPrompt, struct{ Text string }{text})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "text", prompt, TextMaxTokens, TextTemperature)
}

func (s *service) SummarizeBook(ctx context.Context, title, content string) (string, error) {
	prompt, err := render(bookPrompt, struct{ Title, Content string }{title, content})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "book", prompt, BookMaxTokens, BookTemperature)
}

func (s *service) SummarizeReviews(ctx context.Context, reviews []string) (string, error) {
	prompt, err := render(reviewPrompt, struct{ Reviews []string }{reviews})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "reviews", prompt, ReviewMaxTokens, ReviewTemperature)
}

// generate 调用Generator并折叠错误
func (s *service) generate(ctx context.Context, kind, prompt string, maxTokens int, temperature float64) (string, error) {
	start := time.Now()
	out, err := s.generator.Generate(ctx, prompt, maxTokens, temperature)
	metrics.ObserveHistogramVec(metrics.SummaryGenerationDuration,
		map[string]string{"kind": kind}, time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(out) == "" {
		err = errEmptyOutput
	}
	if err != nil {
		metrics.IncCounterVec(metrics.SummaryGenerationsTotal, map[string]string{"kind": kind, "result": "failure"})
		logger.FromContext(ctx).Warn("AI摘要生成失败",
			zap.String("kind", kind),
			zap.Int("max_tokens", maxTokens),
			zap.Error(err),
		)
		return "", apperrors.WithCause(ErrGenerationFailed, err)
	}
	metrics.IncCounterVec(metrics.SummaryGenerationsTotal, map[string]string{"kind": kind, "result": "success"})
	return strings.TrimSpace(out), nil
}

var errEmptyOutput = apperrors.New(apperrors.ErrCodeGenerationFailed, "模型返回内容为空")

func render(tpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", apperrors.Wrap(err, "构建提示词失败")
	}
	return buf.String(), nil
}
