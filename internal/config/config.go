package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 日期筛选策略
const (
	DateStrategyKeyword = "keyword" // start_date.keyword 透传
	DateStrategyRange   = "range"   // 计算 start_date.range_start/range_end
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig          `mapstructure:"database"` // PostgreSQL配置
	Sync     SyncConfig              `mapstructure:"sync"`     // 定时导入配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 多活动源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port     int    `mapstructure:"port"`      // 服务端口
	Mode     string `mapstructure:"mode"`      // Gin运行模式：debug/release/test
	LogLevel string `mapstructure:"log_level"` // logrus 日志级别
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（URL形式）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	AutoCreate      bool          `mapstructure:"auto_create"`       // 库不存在时自动创建
}

// SyncConfig 定时导入配置，Interval 为 0 表示只接受手动触发
type SyncConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	Source        string        `mapstructure:"source"`
	DefaultFilter FilterConfig  `mapstructure:"default_filter"`
}

// FilterConfig 定时导入使用的筛选条件
type FilterConfig struct {
	City     string `mapstructure:"city"`
	Category string `mapstructure:"category"`
	Price    string `mapstructure:"price"`
	Date     string `mapstructure:"date"`
	Query    string `mapstructure:"query"`
	PageSize int    `mapstructure:"page_size"`
}

// SourceConfig 单个活动源的独立配置
type SourceConfig struct {
	BaseURL         string  `mapstructure:"base_url"`          // API基础地址
	Timeout         int     `mapstructure:"timeout"`           // 请求超时（秒）
	Proxy           string  `mapstructure:"proxy"`             // 代理地址
	AuthToken       string  `mapstructure:"auth_token"`        // 主 token（私有 API key）
	OAuthToken      string  `mapstructure:"oauth_token"`       // OAuth token，优先使用
	DateStrategy    string  `mapstructure:"date_strategy"`     // keyword / range
	DefaultRadiusKm float64 `mapstructure:"default_radius_km"` // 未指定半径时使用
	DefaultPageSize int     `mapstructure:"default_page_size"` // 未指定分页大小时使用
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	cfg.applySourceDefaults()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_create", true)
	v.SetDefault("sync.source", "eventbrite")
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]SourceConfig)
	}
	if e, ok := cfg.Sources["eventbrite"]; ok {
		if v := os.Getenv("EVENTBRITE_API_KEY"); v != "" {
			e.AuthToken = v
		}
		if v := os.Getenv("EVENTBRITE_OAUTH_TOKEN"); v != "" {
			e.OAuthToken = v
		}
		if v := os.Getenv("EVENTBRITE_PROXY"); v != "" {
			e.Proxy = v
		}
		cfg.Sources["eventbrite"] = e
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}

// applySourceDefaults 补齐各活动源未配置的字段
func (c *Config) applySourceDefaults() {
	for name, s := range c.Sources {
		s.ApplyDefaults()
		c.Sources[name] = s
	}
}

// ApplyDefaults 补齐超时、分页、半径与日期策略的默认值
func (s *SourceConfig) ApplyDefaults() {
	if s.Timeout <= 0 {
		s.Timeout = 15
	}
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = 50
	}
	if s.DefaultRadiusKm <= 0 {
		s.DefaultRadiusKm = 100
	}
	if s.DateStrategy != DateStrategyRange {
		s.DateStrategy = DateStrategyKeyword
	}
}
