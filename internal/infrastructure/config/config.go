package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖，所有配置项都有默认值
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | postgres | sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	SSLMode         string        `mapstructure:"sslmode"` // postgres
	Path            string        `mapstructure:"path"`    // sqlite文件路径，":memory:"为内存库
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 按驱动生成连接字符串
// - mysql:    user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// - postgres: host=... port=... user=... password=... dbname=... sslmode=disable
// - sqlite:   file路径，开启外键约束（级联删除依赖外键）
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	case DriverSQLite:
		path := d.Path
		if path == "" {
			path = ":memory:"
		}
		return path + "?_pragma=foreign_keys(1)"
	default:
		// URL编码loc参数（Asia/Shanghai → Asia%2FShanghai）
		loc := url.QueryEscape(d.Loc)
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
			d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
	}
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig 写接口的可选Bearer认证
// 用户由外部系统签发Token，这里只做校验
type JWTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
	Issuer  string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// 支持的文本生成后端
const (
	ProviderHTTP        = "http"
	ProviderPlaceholder = "placeholder"
)

type LLMConfig struct {
	Provider string        `mapstructure:"provider"` // http | placeholder
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// 熔断器参数
	BreakerMaxRequests  uint32        `mapstructure:"breaker_max_requests"`
	BreakerInterval     time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout      time.Duration `mapstructure:"breaker_timeout"`
	BreakerMinRequests  uint32        `mapstructure:"breaker_min_requests"`
	BreakerFailureRatio float64       `mapstructure:"breaker_failure_ratio"`
}

// RateLimitConfig AI接口限流
// Redis启用时使用固定窗口计数（多实例共享），否则使用进程内令牌桶
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"` // 每个窗口允许的请求数
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"` // 令牌桶突发容量
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP gRPC端点（host:port）
	ServiceName string `mapstructure:"service_name"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// setDefaults 所有配置项的默认值（无配置文件也能启动）
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "bookshelf")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "bookshelf.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("jwt.enabled", false)
	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.issuer", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", true)

	v.SetDefault("llm.provider", ProviderPlaceholder)
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "llama3")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.breaker_max_requests", 1)
	v.SetDefault("llm.breaker_interval", time.Minute)
	v.SetDefault("llm.breaker_timeout", 30*time.Second)
	v.SetDefault("llm.breaker_min_requests", 5)
	v.SetDefault("llm.breaker_failure_ratio", 0.6)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.service_name", "bookshelf")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml，文件不存在时只使用默认值+环境变量
// 2. 通过环境变量BOOKSHELF_ENV指定环境（如config.prod.yaml）
// 3. 环境变量覆盖（如BOOKSHELF_DATABASE_PASSWORD → database.password）
func Load() (*Config, error) {
	return LoadFrom("./config", ".")
}

// LoadFrom 从指定目录加载配置（测试使用临时目录）
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 设置配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// 环境特定配置（如config.prod.yaml）
	if env := os.Getenv("BOOKSHELF_ENV"); env != "" {
		v.SetConfigName("config." + env)
	}

	// 环境变量绑定（BOOKSHELF_DATABASE_PASSWORD → database.password）
	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 解析到结构体
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 配置验证
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	switch cfg.LLM.Provider {
	case ProviderHTTP, ProviderPlaceholder:
	default:
		return fmt.Errorf("不支持的文本生成后端: %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Provider == ProviderHTTP && cfg.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url不能为空")
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("限流配置无效: requests=%d window=%s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	if cfg.JWT.Enabled && cfg.JWT.Secret == defaultJWTSecret && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须修改JWT密钥")
	}

	return nil
}
