package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// serviceLocation 是解析后的服务时区，所有"今天"和日差计算都使用它
var serviceLocation *time.Location = time.UTC

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode     string     `mapstructure:"mode"`
	Address  string     `mapstructure:"address"`
	Timezone string     `mapstructure:"timezone"`
	Cors     CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	// Driver 可以是 "sqlite" 或 "postgres"
	Driver   string         `mapstructure:"driver"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SqliteConfig 定义了SQLite的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig 定义了PostgreSQL的配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 定义了登录令牌相关的配置
type AuthConfig struct {
	// Secret 是JWT签名密钥；留空时服务器会在启动时生成一个随机密钥
	Secret string `mapstructure:"secret"`
	// TokenTTLMinutes 是登录令牌的有效期（分钟）
	TokenTTLMinutes int `mapstructure:"tokenTTLMinutes"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config") // 文件名 (不带扩展名)
	v.SetConfigType("yaml")   // 文件类型

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 3. 设置默认值，保证在缺少配置文件条目时服务仍可启动
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "mindbridge.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("auth.tokenTTLMinutes", 120)

	// 4. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时依赖默认值和环境变量，其他错误仍然上报
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 解析服务时区，所有基于日历日的判定都依赖这个时区
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("无效的时区配置 '%s': %w", cfg.Server.Timezone, err)
	}
	serviceLocation = loc

	// 8. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}

// Location 返回服务配置的时区。
// 在LoadConfig被调用之前，默认返回UTC。
func Location() *time.Location {
	return serviceLocation
}
