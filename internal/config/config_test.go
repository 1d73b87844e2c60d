package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func TestLoadFrom_Environment(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("MONITOR_INTERVAL", "7")

	cfg, err := LoadFrom(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, int64(-100200300), cfg.Telegram.ChatID)
	assert.Equal(t, 7*time.Second, cfg.Monitor.PollInterval())
	assert.Equal(t, 30*time.Second, cfg.Monitor.Backoff())
	assert.Equal(t, 30*time.Second, cfg.Docker.FetchTimeout())
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.False(t, cfg.Etcd.Enabled())
}

func TestLoadFrom_Defaults(t *testing.T) {
	v := newTestViper()
	v.Set("telegram.bot_token", "token")
	v.Set("telegram.chat_id", 42)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Monitor.PollInterval())
	assert.Equal(t, 30, cfg.Telegram.UpdateTimeout)
	assert.Equal(t, "/docker-monitor-bot/lock", cfg.Etcd.LockKey)
	assert.Equal(t, int64(10), cfg.Etcd.LockTTL)
	assert.Equal(t, time.Second, cfg.Etcd.RetryInterval())
}

func TestLoadFrom_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		chatID  int64
		wantKey string
	}{
		{name: "missing token", chatID: 42, wantKey: "telegram.bot_token"},
		{name: "blank token", token: "   ", chatID: 42, wantKey: "telegram.bot_token"},
		{name: "missing chat id", token: "token", wantKey: "telegram.chat_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			v.Set("telegram.bot_token", tt.token)
			v.Set("telegram.chat_id", tt.chatID)

			_, err := LoadFrom(v)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestLoadFrom_InvalidChatID(t *testing.T) {
	v := newTestViper()
	v.Set("telegram.bot_token", "token")
	v.Set("telegram.chat_id", "not-a-number")

	_, err := LoadFrom(v)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Telegram: TelegramConfig{BotToken: "token", ChatID: 1},
			Monitor:  MonitorConfig{Interval: 5, BackoffInterval: 30},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Monitor.Interval = 0
	assert.ErrorContains(t, cfg.Validate(), "monitor.interval")

	cfg = valid()
	cfg.Monitor.BackoffInterval = -1
	assert.ErrorContains(t, cfg.Validate(), "monitor.backoff_interval")

	cfg = valid()
	cfg.Docker.Timeout = -1
	assert.ErrorContains(t, cfg.Validate(), "docker.timeout")

	cfg = valid()
	cfg.Etcd = EtcdConfig{Endpoints: []string{"localhost:2379"}, LockKey: "/lock"}
	assert.ErrorContains(t, cfg.Validate(), "etcd.lock_ttl")

	cfg.Etcd.LockTTL = 10
	assert.NoError(t, cfg.Validate())
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestInitConfig_DotEnvAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "MONITOR_INTERVAL", "MONITOR_BACKOFF_INTERVAL"} {
		unsetEnv(t, key)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("TELEGRAM_BOT_TOKEN=999:dotenv\nTELEGRAM_CHAT_ID=55\nMONITOR_BACKOFF_INTERVAL=45\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("monitor:\n  interval: 12\n  backoff_interval: 60\n"), 0o600))

	v := viper.New()
	require.NoError(t, initConfig(v, ""))

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "999:dotenv", cfg.Telegram.BotToken)
	assert.Equal(t, int64(55), cfg.Telegram.ChatID)
	assert.Equal(t, 12*time.Second, cfg.Monitor.PollInterval())
	// Environment wins over the config file.
	assert.Equal(t, 45*time.Second, cfg.Monitor.Backoff())
}

func TestInitConfig_NoFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	v := viper.New()
	require.NoError(t, initConfig(v, ""))
	assert.Equal(t, 5, v.GetInt("monitor.interval"))
}

func TestInitConfig_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	err := initConfig(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "error reading config file")
}
