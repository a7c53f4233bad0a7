package config

import (
	"log"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host       string `envconfig:"HOST"`
	Port       string `envconfig:"PORT"`
	Domain     string `envconfig:"DOMAIN"`
	Prefix     string `envconfig:"PREFIX"`
	Mode       Mode   `envconfig:"MODE"`
	Mysql      Mysql
	Redis      Redis
	JWT        JWT
	Log        Log        `mapstructure:"Log"`
	Sentry     Sentry     `mapstructure:"Sentry"`
	OTel       OTel       `mapstructure:"OTel"`
	Chat       Chat       `mapstructure:"Chat"`
	Notify     Notify     `mapstructure:"Notify"`
	Reputation Reputation `mapstructure:"Reputation"`
	Lifecycle  Lifecycle  `mapstructure:"Lifecycle"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string  `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string  `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64 `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     Tracing `mapstructure:"tracing"`
}

type Tracing struct {
	DBSlowThresholdMs    int  `mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `envconfig:"OTEL_ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"OTEL_AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"OTEL_AGENT_PORT" mapstructure:"agent_port"`
}

// Chat 聊天协作方（外部服务）的接入配置
type Chat struct {
	BaseURL string `envconfig:"CHAT_BASE_URL" mapstructure:"base_url"`
	Token   string `envconfig:"CHAT_TOKEN" mapstructure:"token"`
}

// Notify 通知网关（外部服务）的接入配置
type Notify struct {
	BaseURL string `envconfig:"NOTIFY_BASE_URL" mapstructure:"base_url"`
	Token   string `envconfig:"NOTIFY_TOKEN" mapstructure:"token"`
}

// Reputation 信誉温度服务（只读）的接入配置
type Reputation struct {
	BaseURL      string  `envconfig:"REPUTATION_BASE_URL" mapstructure:"base_url"`
	CacheTTLSec  int     `envconfig:"REPUTATION_CACHE_TTL_SEC" mapstructure:"cache_ttl_sec"`
	DefaultValue float64 `envconfig:"REPUTATION_DEFAULT" mapstructure:"default_value"`
}

// Lifecycle 招募生命周期定时扫描配置
type Lifecycle struct {
	ScanIntervalMin int `envconfig:"LIFECYCLE_SCAN_INTERVAL_MIN" mapstructure:"scan_interval_min"` // 扫描间隔（分钟），0 表示不启动后台扫描
	ChunkSize       int `envconfig:"LIFECYCLE_CHUNK_SIZE" mapstructure:"chunk_size"`               // 单批处理的帖子数
}

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		cfg := defaultConfig()

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				log.Fatalf("读取配置文件失败: %v", err)
			}
			// 没有配置文件时仅使用默认值和环境变量
		} else if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("解析配置文件失败: %v", err)
		}

		if err := envconfig.Process("", cfg); err != nil {
			log.Fatalf("读取环境变量失败: %v", err)
		}

		if cfg.Mode != ModeRelease {
			cfg.Mode = ModeDebug
		}
		instance = cfg
	})
}

// Get 获取全局配置，必要时触发 Init
func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}

// Set 仅供测试注入配置使用
func Set(cfg *Config) {
	instance = cfg
}

func defaultConfig() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		JWT: JWT{
			AccessSecret: "team-recruit-secret",
			AccessExpire: 72 * 3600,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     30,
		},
		Reputation: Reputation{
			CacheTTLSec:  600,
			DefaultValue: 36.5,
		},
		Lifecycle: Lifecycle{
			ScanIntervalMin: 0,
			ChunkSize:       200,
		},
	}
}
