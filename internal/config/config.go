// Package config loads and persists the application settings, and watches
// the config file so setting changes apply live without a restart.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/recents"
)

const (
	DefaultMaxHistory = 50
	MinMaxHistory     = 10
	MaxMaxHistory     = 200
)

// Config represents the application settings. The clipboard engine
// consumes these; it does not own them.
type Config struct {
	MaxHistory          int            `yaml:"max_history"`
	UpdateRecencyOnCopy bool           `yaml:"update_recency_on_copy"`
	UnpinOnPaste        bool           `yaml:"unpin_on_paste"`
	RecentsMax          map[string]int `yaml:"recents_max,omitempty"`
	CacheDir            string         `yaml:"cache_dir,omitempty"`
	DataDir             string         `yaml:"data_dir,omitempty"`
	LogLevel            string         `yaml:"log_level,omitempty"`
	LogFormat           string         `yaml:"log_format,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxHistory:          DefaultMaxHistory,
		UpdateRecencyOnCopy: true,
		UnpinOnPaste:        false,
		LogLevel:            "info",
		LogFormat:           "auto",
	}
}

// RecentsLimit returns the configured recents bound for a picker feature,
// falling back to the shared default when unset or invalid.
func (c *Config) RecentsLimit(feature string) int {
	if n, ok := c.RecentsMax[feature]; ok && n > 0 {
		return n
	}
	return recents.DefaultLimit
}

// normalize clamps out-of-range values instead of failing: a bad settings
// file must never keep the daemon from starting.
func (c *Config) normalize() {
	if c.MaxHistory == 0 {
		c.MaxHistory = DefaultMaxHistory
	}
	if c.MaxHistory < MinMaxHistory {
		c.MaxHistory = MinMaxHistory
	}
	if c.MaxHistory > MaxMaxHistory {
		c.MaxHistory = MaxMaxHistory
	}
}

// Manager manages configuration persistence and live-change subscribers.
type Manager struct {
	configPath string

	mu      sync.Mutex
	current *Config
	subs    []func(Config)
}

// NewManager creates a manager for the default config location.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config directory: %w", err)
	}
	return NewManagerWithPath(filepath.Join(homeDir, "all-in-one-clipboard", "config.yaml")), nil
}

// NewManagerWithPath creates a manager with a custom config path.
func NewManagerWithPath(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// GetConfigPath returns the path to the config file.
func (m *Manager) GetConfigPath() string { return m.configPath }

// Load reads the configuration from file. A missing file yields the
// defaults; a malformed file is logged and yields the defaults too. The
// result becomes the current snapshot.
func (m *Manager) Load() *Config {
	cfg := m.read()

	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()
	return cfg
}

func (m *Manager) read() *Config {
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return DefaultConfig()
	}
	if err != nil {
		slog.Warn("failed to read config file, using defaults", "path", m.configPath, "error", err)
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("malformed config file, using defaults", "path", m.configPath, "error", err)
		return DefaultConfig()
	}
	cfg.normalize()
	return cfg
}

// Save writes the configuration to file and makes it the current snapshot.
func (m *Manager) Save(cfg *Config) error {
	cfg.normalize()

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current configuration, loading it first
// if needed.
func (m *Manager) Snapshot() Config {
	m.mu.Lock()
	cur := m.current
	m.mu.Unlock()

	if cur == nil {
		cur = m.Load()
	}
	return *cur
}

// Subscribe registers fn to receive every configuration change observed
// by Watch or applied via Save-through-Update.
func (m *Manager) Subscribe(fn func(Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) publish(cfg Config) {
	m.mu.Lock()
	subs := make([]func(Config), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(cfg)
	}
}

// Update modifies a specific configuration value by key and persists it.
func (m *Manager) Update(key, value string) error {
	cfg := m.Snapshot()

	switch key {
	case "max-history":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for max-history: %s", value)
		}
		cfg.MaxHistory = n
	case "update-recency-on-copy":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for update-recency-on-copy: %s", value)
		}
		cfg.UpdateRecencyOnCopy = b
	case "unpin-on-paste":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for unpin-on-paste: %s", value)
		}
		cfg.UnpinOnPaste = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	if err := m.Save(&cfg); err != nil {
		return err
	}
	m.publish(cfg)
	return nil
}

// Get returns the value for a specific configuration key.
func (m *Manager) Get(key string) (string, error) {
	cfg := m.Snapshot()

	switch key {
	case "max-history":
		return strconv.Itoa(cfg.MaxHistory), nil
	case "update-recency-on-copy":
		return strconv.FormatBool(cfg.UpdateRecencyOnCopy), nil
	case "unpin-on-paste":
		return strconv.FormatBool(cfg.UnpinOnPaste), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// List returns all configuration keys and values.
func (m *Manager) List() map[string]string {
	cfg := m.Snapshot()
	return map[string]string{
		"max-history":            strconv.Itoa(cfg.MaxHistory),
		"update-recency-on-copy": strconv.FormatBool(cfg.UpdateRecencyOnCopy),
		"unpin-on-paste":         strconv.FormatBool(cfg.UnpinOnPaste),
	}
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("must be 'true' or 'false'")
	}
}
