package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"shroud/internal/eventbus"
)

// DefaultBackendURL is where the search/proxy API listens unless configured
const DefaultBackendURL = "http://localhost:8000"

// EnvPrefix prefixes every environment override, e.g. SHROUD_BACKEND_URL
const EnvPrefix = "shroud"

// Config represents the application configuration
type Config struct {
	Version    int         `toml:"version"`
	BackendURL string      `toml:"backend_url"`
	Timeout    string      `toml:"timeout,omitempty"` // Go duration; empty means no client timeout
	UISettings UISettings  `toml:"ui"`
	Log        LogSettings `toml:"log"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowSnippets bool `toml:"show_snippets"`
	WrapWidth    int  `toml:"wrap_width"` // 0 wraps at the terminal width
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// envOverrides mirrors the settings that can come from the environment
type envOverrides struct {
	BackendURL string        `envconfig:"BACKEND_URL"`
	LogLevel   string        `envconfig:"LOG_LEVEL"`
	LogFile    string        `envconfig:"LOG_FILE"`
	Timeout    time.Duration `envconfig:"TIMEOUT"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithPath creates a config service for an explicit file
func NewConfigServiceWithPath(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigServiceWithPath(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns $XDG_CONFIG_HOME/shroud/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "shroud", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file; a missing file yields the defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	path := cs.filePath
	if errors.Is(err, os.ErrNotExist) {
		cfg, err, path = DefaultConfig(), nil, ""
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, BackendURL: cfg.BackendURL})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		BackendURL: DefaultBackendURL,
		UISettings: UISettings{
			ShowSnippets: true,
		},
		Log: LogSettings{
			Level: "info",
			File:  "shroud.log",
		},
	}
}

// LoadDotEnv reads .env and then .env.<SHROUD_ENV> from dir into the process
// environment. The second file overrides the first; real environment variables
// win over .env but not over the environment-specific file. Missing files are
// not an error.
func LoadDotEnv(dir string) error {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	env := os.Getenv("SHROUD_ENV")
	if env == "" {
		return nil
	}
	name := ".env." + env
	if err := godotenv.Overload(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	return nil
}

// ApplyEnv overrides cfg with SHROUD_* environment variables
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.BackendURL != "" {
		cfg.BackendURL = env.BackendURL
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	return cfg.Validate()
}

// TimeoutDuration returns the client timeout; zero means none
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate checks the values that cannot be fixed up silently
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.BackendURL))
	if err != nil {
		return fmt.Errorf("backend_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("backend_url must be an absolute http(s) address, got %q", c.BackendURL)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
		}
	}
	if c.UISettings.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative, got %d", c.UISettings.WrapWidth)
	}
	return nil
}
