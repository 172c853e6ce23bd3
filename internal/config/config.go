package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"fpvsettling/ai-gateway/internal/domain"
)

type Config struct {
	Env    string       `mapstructure:"env"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	AI     AIConfig     `mapstructure:"ai"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`

	v *viper.Viper
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type AIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	BaseURL         string `mapstructure:"base_url"`
	IncludeThoughts bool   `mapstructure:"include_thoughts"`
	Timeout         int    `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Load reads defaults, an optional config/local.yaml and the environment.
// GEMINI_API_KEY is accepted as an alias for AI_API_KEY.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", "AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	v.SetConfigName("local")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.v = v
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8765")

	v.SetDefault("log.file", "game.log")
	v.SetDefault("log.level", "debug")

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.default_model", domain.DefaultModel)
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.include_thoughts", true)
	v.SetDefault("ai.timeout", 0)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "game-logs")
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c *Config) GetAITimeout() time.Duration {
	return time.Duration(c.AI.Timeout) * time.Second
}

// KafkaEnabled reports whether log fan-out has at least one broker.
func (c *Config) KafkaEnabled() bool {
	for _, b := range c.Kafka.Brokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}

// ConfigFile is the path of the file the config was read from, if any.
func (c *Config) ConfigFile() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch reloads the config file on change and hands the fresh copy to onChange.
// Only settings that are safe to change at runtime should be applied by the
// callback; the API key and listener are fixed at startup.
func (c *Config) Watch(onChange func(fsnotify.Event, *Config)) bool {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return false
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		fresh, err := unmarshal(c.v)
		if err != nil {
			return
		}
		onChange(e, fresh)
	})
	c.v.WatchConfig()
	return true
}
