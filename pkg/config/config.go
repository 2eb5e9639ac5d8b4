package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	ScanDuration     time.Duration `yaml:"scan_duration"`
	ConnectTimeout   time.Duration `yaml:"connect_timeout"`
	NotifyTimeout    time.Duration `yaml:"notify_timeout"`
	OperationTimeout time.Duration `yaml:"operation_timeout"`

	// ConnectAttempts is the number of connection attempts per operation.
	ConnectAttempts int `yaml:"connect_attempts"`

	LogLevel    string     `yaml:"log_level"`
	ProtocolLog string     `yaml:"protocol_log"`
	Adapter     string     `yaml:"adapter"`
	PowerOn     bool       `yaml:"power_on"`
	Sync        SyncConfig `yaml:"sync"`
}

// SyncConfig configures the periodic sync command.
type SyncConfig struct {
	// Schedule is a cron expression, a descriptor such as "@daily" or a
	// Go duration such as "6h".
	Schedule string `yaml:"schedule"`

	// ScanDuration is the scan time of each run.
	ScanDuration time.Duration `yaml:"scan_duration"`

	// AMPM selects the 12-hour display on clocks that support it.
	AMPM bool `yaml:"ampm"`

	// Families limits sync to these family types. Empty means all.
	Families []string `yaml:"families"`
}

// Defaults returns the built-in settings.
func Defaults() *Config {
	return &Config{
		ScanDuration:     5 * time.Second,
		ConnectTimeout:   10 * time.Second,
		NotifyTimeout:    5 * time.Second,
		OperationTimeout: 10 * time.Second,
		ConnectAttempts:  3,
		LogLevel:         "info",
		Adapter:          "hci0",
		Sync: SyncConfig{
			Schedule:     "@daily",
			ScanDuration: 10 * time.Second,
		},
	}
}

// Load reads a YAML config file, applies env var overrides and validates.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps BLUETOOTH_CLOCKS_* env vars to config fields.
// Unparseable values are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLUETOOTH_CLOCKS_SCAN_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScanDuration = d
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConnectTimeout = d
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_NOTIFY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.NotifyTimeout = d
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_OPERATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OperationTimeout = d
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_CONNECT_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ConnectAttempts = n
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_PROTOCOL_LOG"); v != "" {
		cfg.ProtocolLog = v
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_ADAPTER"); v != "" {
		cfg.Adapter = v
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_POWER_ON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.PowerOn = b
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_SYNC_SCHEDULE"); v != "" {
		cfg.Sync.Schedule = v
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_SYNC_AMPM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sync.AMPM = b
		}
	}
	if v := os.Getenv("BLUETOOTH_CLOCKS_SYNC_FAMILIES"); v != "" {
		var families []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				families = append(families, f)
			}
		}
		cfg.Sync.Families = families
	}
}

// Validate checks value ranges. Family names are checked against the
// registry by the caller.
func (c *Config) Validate() error {
	if c.ScanDuration <= 0 {
		return fmt.Errorf("%w: scan_duration must be positive", ErrInvalidConfig)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("%w: connect_timeout must be positive", ErrInvalidConfig)
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("%w: notify_timeout must be positive", ErrInvalidConfig)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("%w: operation_timeout must be positive", ErrInvalidConfig)
	}
	if c.ConnectAttempts < 1 {
		return fmt.Errorf("%w: connect_attempts must be at least 1", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Adapter == "" {
		return fmt.Errorf("%w: adapter is empty", ErrInvalidConfig)
	}
	if c.Sync.Schedule == "" {
		return fmt.Errorf("%w: sync.schedule is empty", ErrInvalidConfig)
	}
	if c.Sync.ScanDuration <= 0 {
		return fmt.Errorf("%w: sync.scan_duration must be positive", ErrInvalidConfig)
	}
	return nil
}
