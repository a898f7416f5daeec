package llm

import (
	"context"
	"strings"
)

// placeholderMaxWords 占位摘要最多保留的词数
const placeholderMaxWords = 40

// PlaceholderGenerator 本地占位生成器
// 没有模型服务时用于开发和演示:取提示词中待摘要的正文,截断到首句或前若干个词
// 输出只依赖输入,相同的提示词总是得到相同的结果
type PlaceholderGenerator struct{}

// NewPlaceholderGenerator 创建占位生成器
func NewPlaceholderGenerator() *PlaceholderGenerator {
	return &PlaceholderGenerator{}
}

// Generate 生成占位摘要
func (PlaceholderGenerator) Generate(ctx context.Context, prompt string, maxTokens int, _ float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	words := strings.Fields(body(prompt))
	limit := placeholderMaxWords
	if maxTokens > 0 && maxTokens < limit {
		limit = maxTokens
	}
	if len(words) > limit {
		words = words[:limit]
	}
	text := strings.Join(words, " ")

	// 截断到第一句
	if i := strings.IndexAny(text, ".!?"); i >= 0 && i < len(text)-1 {
		text = text[:i+1]
	}
	if text == "" {
		return "", nil
	}
	return "[placeholder summary] " + text, nil
}

// body 提取提示词中的正文
// 优先取三引号之间的内容,其次去掉末尾的"Summary:"
func body(prompt string) string {
	if start := strings.Index(prompt, `"""`); start >= 0 {
		rest := prompt[start+3:]
		if end := strings.Index(rest, `"""`); end >= 0 {
			return rest[:end]
		}
	}
	return strings.TrimSuffix(strings.TrimSpace(prompt), "Summary:")
}
