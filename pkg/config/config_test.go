package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.ScanDuration)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 10*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 3, cfg.ConnectAttempts)
	assert.Equal(t, "hci0", cfg.Adapter)
	assert.Equal(t, "@daily", cfg.Sync.Schedule)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().ScanDuration, cfg.ScanDuration)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
scan_duration: 8s
notify_timeout: 2s
operation_timeout: 4s
connect_attempts: 5
log_level: debug
protocol_log: /tmp/clocks.clog
power_on: true
sync:
  schedule: "0 3 * * *"
  ampm: true
  families: ["Xiaomi LYWSD02", "PVVX"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8*time.Second, cfg.ScanDuration)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout, "unset keys keep defaults")
	assert.Equal(t, 2*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 4*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 5, cfg.ConnectAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/clocks.clog", cfg.ProtocolLog)
	assert.True(t, cfg.PowerOn)
	assert.Equal(t, "0 3 * * *", cfg.Sync.Schedule)
	assert.Equal(t, 10*time.Second, cfg.Sync.ScanDuration)
	assert.True(t, cfg.Sync.AMPM)
	assert.Equal(t, []string{"Xiaomi LYWSD02", "PVVX"}, cfg.Sync.Families)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "scan_duration: [bad"))
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "scan_duration: fast\n"))
	assert.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: loud\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("BLUETOOTH_CLOCKS_SCAN_DURATION", "12s")
	t.Setenv("BLUETOOTH_CLOCKS_CONNECT_TIMEOUT", "not-a-duration")
	t.Setenv("BLUETOOTH_CLOCKS_NOTIFY_TIMEOUT", "3s")
	t.Setenv("BLUETOOTH_CLOCKS_OPERATION_TIMEOUT", "7s")
	t.Setenv("BLUETOOTH_CLOCKS_CONNECT_ATTEMPTS", "1")
	t.Setenv("BLUETOOTH_CLOCKS_LOG_LEVEL", "warn")
	t.Setenv("BLUETOOTH_CLOCKS_PROTOCOL_LOG", "capture.clog")
	t.Setenv("BLUETOOTH_CLOCKS_ADAPTER", "hci1")
	t.Setenv("BLUETOOTH_CLOCKS_POWER_ON", "true")
	t.Setenv("BLUETOOTH_CLOCKS_SYNC_SCHEDULE", "30m")
	t.Setenv("BLUETOOTH_CLOCKS_SYNC_AMPM", "1")
	t.Setenv("BLUETOOTH_CLOCKS_SYNC_FAMILIES", " PVVX, ThermoPro TP358 ,")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)

	assert.Equal(t, 12*time.Second, cfg.ScanDuration)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout, "invalid value ignored")
	assert.Equal(t, 3*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 7*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 1, cfg.ConnectAttempts)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "capture.clog", cfg.ProtocolLog)
	assert.Equal(t, "hci1", cfg.Adapter)
	assert.True(t, cfg.PowerOn)
	assert.Equal(t, "30m", cfg.Sync.Schedule)
	assert.True(t, cfg.Sync.AMPM)
	assert.Equal(t, []string{"PVVX", "ThermoPro TP358"}, cfg.Sync.Families)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("BLUETOOTH_CLOCKS_ADAPTER", "hci2")
	cfg, err := Load(writeConfig(t, "adapter: hci1\n"))
	require.NoError(t, err)
	assert.Equal(t, "hci2", cfg.Adapter)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"scan duration", func(c *Config) { c.ScanDuration = 0 }},
		{"connect timeout", func(c *Config) { c.ConnectTimeout = -time.Second }},
		{"notify timeout", func(c *Config) { c.NotifyTimeout = 0 }},
		{"operation timeout", func(c *Config) { c.OperationTimeout = 0 }},
		{"connect attempts", func(c *Config) { c.ConnectAttempts = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"adapter", func(c *Config) { c.Adapter = "" }},
		{"schedule", func(c *Config) { c.Sync.Schedule = "" }},
		{"sync scan duration", func(c *Config) { c.Sync.ScanDuration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := Defaults()
	cfg.LogLevel = "DEBUG"
	assert.NoError(t, cfg.Validate(), "log level is case-insensitive")
}
