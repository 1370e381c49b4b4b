package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/hae/internal/constants"
)

// Config is the resolved client configuration.
// Precedence is environment (HAE_*), then the config file, then defaults.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	DataDir   string          `mapstructure:"data_dir"`
	Log       LogConfig       `mapstructure:"log"`
	Form      FormConfig      `mapstructure:"form"`
	DevServer DevServerConfig `mapstructure:"dev_server"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig identifies the signed-in professor. The token itself lives in the keyring.
type SessionConfig struct {
	Email string `mapstructure:"email"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type FormConfig struct {
	// NavigateDelay is how long a success notice stays up before the form closes.
	NavigateDelay time.Duration `mapstructure:"navigate_delay"`
}

type DevServerConfig struct {
	Addr  string `mapstructure:"addr"`
	Token string `mapstructure:"token"`
}

// DefaultDataDir is the per-user directory holding the journal, logs and config file.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+constants.AppName)
	}
	return filepath.Join(dir, constants.AppName)
}

// Load reads configuration from path, or from config.yaml in the data directory
// or working directory when path is empty. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	dataDir := DefaultDataDir()
	v.SetDefault("api.base_url", constants.DefaultAPIBaseURL)
	v.SetDefault("api.timeout", constants.DefaultAPITimeout)
	v.SetDefault("session.email", "")
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("log.debug", false)
	v.SetDefault("form.navigate_delay", constants.DefaultNavigateDelay)
	v.SetDefault("dev_server.addr", constants.DefaultDevServerAddr)
	v.SetDefault("dev_server.token", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid config: api.base_url %q must be an absolute URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid config: api.base_url scheme must be http or https")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid config: api.timeout must be positive")
	}
	if c.Form.NavigateDelay < 0 {
		return fmt.Errorf("invalid config: form.navigate_delay cannot be negative")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("invalid config: data_dir cannot be empty")
	}
	return nil
}

// JournalPath is the location of the local submission journal.
func (c *Config) JournalPath() string {
	return filepath.Join(c.DataDir, constants.JournalFileName)
}
