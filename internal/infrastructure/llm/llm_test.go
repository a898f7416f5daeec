package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

func testLLMConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:            config.ProviderHTTP,
		BaseURL:             baseURL,
		Model:               "llama3",
		Timeout:             time.Second,
		BreakerMaxRequests:  1,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      time.Minute,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
	}
}

func TestHTTPGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("请求体与响应解析", func(t *testing.T) {
		var got generateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"model":"llama3","response":"A short summary.","done":true}`))
		}))
		defer srv.Close()

		g := NewHTTPGenerator(testLLMConfig(srv.URL + "/"))
		text, err := g.Generate(ctx, "Summarize this", 200, 0.5)
		require.NoError(t, err)
		assert.Equal(t, "A short summary.", text)

		assert.Equal(t, "llama3", got.Model)
		assert.Equal(t, "Summarize this", got.Prompt)
		assert.False(t, got.Stream)
		assert.Equal(t, 200, got.Options.NumPredict)
		assert.Equal(t, 0.5, got.Options.Temperature)
	})

	t.Run("非200状态码", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPGenerator(testLLMConfig(srv.URL)).Generate(ctx, "p", 10, 0.1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.Contains(t, err.Error(), "model not loaded")
	})

	t.Run("响应中的error字段", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"model 'llama3' not found"}`))
		}))
		defer srv.Close()

		_, err := NewHTTPGenerator(testLLMConfig(srv.URL)).Generate(ctx, "p", 10, 0.1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("超时", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		cfg := testLLMConfig(srv.URL)
		cfg.Timeout = 50 * time.Millisecond
		_, err := NewHTTPGenerator(cfg).Generate(ctx, "p", 10, 0.1)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("连续失败后熔断", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		g := NewHTTPGenerator(testLLMConfig(srv.URL))
		for i := 0; i < 2; i++ {
			_, err := g.Generate(ctx, "p", 10, 0.1)
			require.Error(t, err)
		}

		_, err := g.Generate(ctx, "p", 10, 0.1)
		assert.True(t, errors.Is(err, gobreaker.ErrOpenState), "got=%v", err)
		assert.Equal(t, int32(2), hits.Load(), "熔断后不再请求模型服务")
	})
}

func TestPlaceholderGenerator(t *testing.T) {
	g := NewPlaceholderGenerator()
	ctx := context.Background()

	t.Run("取三引号内的首句", func(t *testing.T) {
		prompt := "Summarize:\n\"\"\"\nThis is a placeholder for the content of 'Dune' by Frank Herbert. More text here.\n\"\"\"\nSummary:"
		out, err := g.Generate(ctx, prompt, 200, 0.5)
		require.NoError(t, err)
		assert.Equal(t, "[placeholder summary] This is a placeholder for the content of 'Dune' by Frank Herbert.", out)

		again, _ := g.Generate(ctx, prompt, 200, 0.5)
		assert.Equal(t, out, again)
	})

	t.Run("按maxTokens截断词数", func(t *testing.T) {
		out, err := g.Generate(ctx, "one two three four five six", 3, 0.5)
		require.NoError(t, err)
		assert.Equal(t, "[placeholder summary] one two three", out)
	})

	t.Run("空正文返回空串", func(t *testing.T) {
		out, err := g.Generate(ctx, "Summary:", 10, 0.5)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Context已取消", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := g.Generate(cctx, "text", 10, 0.5)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew(t *testing.T) {
	t.Run("http", func(t *testing.T) {
		g, err := New(&config.Config{LLM: testLLMConfig("http://localhost:11434")})
		require.NoError(t, err)
		assert.IsType(t, &HTTPGenerator{}, g)
	})

	t.Run("placeholder", func(t *testing.T) {
		g, err := New(&config.Config{LLM: config.LLMConfig{Provider: config.ProviderPlaceholder}})
		require.NoError(t, err)
		assert.IsType(t, &PlaceholderGenerator{}, g)
	})

	t.Run("未知后端", func(t *testing.T) {
		_, err := New(&config.Config{LLM: config.LLMConfig{Provider: "openai"}})
		assert.Error(t, err)
	})
}
