package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err, "没有配置文件时应使用默认值")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, ProviderPlaceholder, cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
database:
  driver: sqlite
  path: ":memory:"
llm:
  provider: http
  base_url: http://ollama:11434
  timeout: 5s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", cfg.Database.DSN())
	assert.Equal(t, "http://ollama:11434", cfg.LLM.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("BOOKSHELF_SERVER_PORT", "7070")
	t.Setenv("BOOKSHELF_DATABASE_DRIVER", "postgres")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
}

func TestValidate(t *testing.T) {
	t.Run("不支持的驱动", func(t *testing.T) {
		t.Setenv("BOOKSHELF_DATABASE_DRIVER", "oracle")
		_, err := LoadFrom(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("不支持的生成后端", func(t *testing.T) {
		t.Setenv("BOOKSHELF_LLM_PROVIDER", "gpt")
		_, err := LoadFrom(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("生产环境默认JWT密钥", func(t *testing.T) {
		t.Setenv("BOOKSHELF_SERVER_MODE", "release")
		t.Setenv("BOOKSHELF_JWT_ENABLED", "true")
		_, err := LoadFrom(t.TempDir())
		assert.Error(t, err)
	})
}

func TestMySQLDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver: DriverMySQL, User: "root", Password: "pw", Host: "db", Port: 3306,
		DBName: "bookshelf", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookshelf?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
