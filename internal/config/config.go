package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TelegramConfig holds the bot credential and the single chat it talks to.
type TelegramConfig struct {
	BotToken      string `mapstructure:"bot_token"`
	ChatID        int64  `mapstructure:"chat_id"`
	UpdateTimeout int    `mapstructure:"update_timeout"`
}

// MonitorConfig holds the poll loop intervals, in seconds.
type MonitorConfig struct {
	Interval        int `mapstructure:"interval"`
	BackoffInterval int `mapstructure:"backoff_interval"`
}

// DockerConfig holds Docker client settings.
type DockerConfig struct {
	Timeout int `mapstructure:"timeout"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"log_level"`
}

// EtcdConfig holds the single-instance guard configuration. An empty endpoint
// list disables the guard.
type EtcdConfig struct {
	Endpoints         []string `mapstructure:"endpoints"`
	LockKey           string   `mapstructure:"lock_key"`
	LockTTL           int64    `mapstructure:"lock_ttl"`
	LockRetryInterval float64  `mapstructure:"lock_retry_interval"`
	DialTimeout       float64  `mapstructure:"dial_timeout"`
}

// Config is the top-level configuration struct.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Docker   DockerConfig   `mapstructure:"docker"`
	Logging  LoggingConfig  `mapstructure:"log"`
	Etcd     EtcdConfig     `mapstructure:"etcd"`
}

func (c MonitorConfig) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

func (c MonitorConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffInterval) * time.Second
}

func (c DockerConfig) FetchTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c EtcdConfig) Enabled() bool {
	return len(c.Endpoints) > 0
}

func (c EtcdConfig) RetryInterval() time.Duration {
	return time.Duration(c.LockRetryInterval * float64(time.Second))
}

// SetDefaults registers every known key so that AutomaticEnv can resolve it
// during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.update_timeout", 30)
	v.SetDefault("monitor.interval", 5)
	v.SetDefault("monitor.backoff_interval", 30)
	v.SetDefault("docker.timeout", 30)
	v.SetDefault("log.log_level", "INFO")
	v.SetDefault("etcd.endpoints", []string{})
	v.SetDefault("etcd.lock_key", "/docker-monitor-bot/lock")
	v.SetDefault("etcd.lock_ttl", 10)
	v.SetDefault("etcd.lock_retry_interval", 1.0)
	v.SetDefault("etcd.dial_timeout", 2.0)
}

// InitConfig performs the initial configuration: loading an optional .env file,
// setting defaults, specifying the config file, and reading it.
func InitConfig(configFile string) error {
	return initConfig(viper.GetViper(), configFile)
}

func initConfig(v *viper.Viper, configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config") // Looks for config.yaml
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// TELEGRAM_BOT_TOKEN -> telegram.bot_token, MONITOR_INTERVAL -> monitor.interval, ...
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the global viper instance into a validated Config.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v into a Config and validates it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewConfigurationError("", fmt.Sprintf("unable to decode into struct: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that prevents the process from starting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		return NewConfigurationError("telegram.bot_token", "missing Telegram bot token")
	}
	if c.Telegram.ChatID == 0 {
		return NewConfigurationError("telegram.chat_id", "missing Telegram chat ID")
	}
	if c.Monitor.Interval <= 0 {
		return NewConfigurationError("monitor.interval", "must be positive")
	}
	if c.Monitor.BackoffInterval <= 0 {
		return NewConfigurationError("monitor.backoff_interval", "must be positive")
	}
	if c.Docker.Timeout < 0 {
		return NewConfigurationError("docker.timeout", "must not be negative")
	}
	if c.Etcd.Enabled() {
		if c.Etcd.LockKey == "" {
			return NewConfigurationError("etcd.lock_key", "must be set when etcd endpoints are configured")
		}
		if c.Etcd.LockTTL <= 0 {
			return NewConfigurationError("etcd.lock_ttl", "must be positive")
		}
	}
	return nil
}
