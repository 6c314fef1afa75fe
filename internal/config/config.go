// Package config 读取命令行配置: 默认值, 配置文件, 环境变量依次覆盖
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀, 如 PREFIX_STORE_PATH
const EnvPrefix = "PREFIX"

// Config 全部配置
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Search SearchConfig `mapstructure:"search"`
	Learn  LearnConfig  `mapstructure:"learn"`
	Log    LogConfig    `mapstructure:"log"`
}

// StoreConfig 词典存储配置
type StoreConfig struct {
	Path       string        `mapstructure:"path"`
	InMemory   bool          `mapstructure:"in_memory"`
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

// SearchConfig 补全配置
type SearchConfig struct {
	// DefaultLimit 命令行未指定 --limit 时的结果上限, 0 表示不限制
	DefaultLimit int `mapstructure:"default_limit"`
}

// LearnConfig 新词学习配置
type LearnConfig struct {
	Frequency float64 `mapstructure:"frequency"`
	Pos       string  `mapstructure:"pos"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 读取配置, path 为空时只使用默认值与环境变量
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "prefix_db")
	v.SetDefault("store.in_memory", false)
	v.SetDefault("store.gc_interval", "5m")

	v.SetDefault("search.default_limit", 10)

	v.SetDefault("learn.frequency", 1000.0)
	v.SetDefault("learn.pos", "nz")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []error
	if !c.Store.InMemory && c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required unless store.in_memory is set"))
	}
	if c.Store.GCInterval <= 0 {
		errs = append(errs, fmt.Errorf("invalid store.gc_interval: %s", c.Store.GCInterval))
	}
	if c.Search.DefaultLimit < 0 {
		errs = append(errs, fmt.Errorf("invalid search.default_limit: %d", c.Search.DefaultLimit))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log.format: %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
