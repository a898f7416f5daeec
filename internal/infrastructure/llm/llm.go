// Package llm 文本生成后端
//
// 实现summary.Generator接口:
//   - HTTPGenerator: 调用兼容Ollama的/api/generate接口
//   - PlaceholderGenerator: 本地占位实现,不依赖模型服务
package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/summary"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// New 按llm.provider选择生成后端
func New(cfg *config.Config) (summary.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderHTTP:
		logger.L().Info("使用HTTP模型服务",
			zap.String("base_url", cfg.LLM.BaseURL),
			zap.String("model", cfg.LLM.Model),
		)
		return NewHTTPGenerator(cfg.LLM), nil
	case config.ProviderPlaceholder, "":
		logger.L().Info("使用占位文本生成器")
		return NewPlaceholderGenerator(), nil
	default:
		return nil, fmt.Errorf("不支持的文本生成后端: %s", cfg.LLM.Provider)
	}
}
