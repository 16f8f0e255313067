package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// BoardConfig configures the board process.
//
// Precedence, lowest first: defaults, the YAML file, BOARD_* environment
// variables, then command-line flags applied by the caller.
type BoardConfig struct {
	// APIBaseURL is the activities API root, e.g. http://localhost:8000.
	APIBaseURL string `yaml:"api_url" env:"BOARD_API_URL"`
	// ListenAddr is where `board serve` listens.
	ListenAddr string `yaml:"listen_addr" env:"BOARD_LISTEN_ADDR"`

	// HTTPTimeout bounds each API call. Zero leaves it to the transport.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"BOARD_HTTP_TIMEOUT"`

	SignupMessageTTL     time.Duration `yaml:"signup_message_ttl" env:"BOARD_SIGNUP_MESSAGE_TTL"`
	UnregisterMessageTTL time.Duration `yaml:"unregister_message_ttl" env:"BOARD_UNREGISTER_MESSAGE_TTL"`

	LogLevel string `yaml:"log_level" env:"BOARD_LOG_LEVEL"`
}

func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		APIBaseURL:           "http://localhost:8000",
		ListenAddr:           ":8080",
		SignupMessageTTL:     5000 * time.Millisecond,
		UnregisterMessageTTL: 4000 * time.Millisecond,
		LogLevel:             "info",
	}
}

// LoadBoardConfig layers the YAML file at path (optional when empty) and the
// environment over the defaults, then validates the result.
func LoadBoardConfig(path string) (BoardConfig, error) {
	cfg := DefaultBoardConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return BoardConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return BoardConfig{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return BoardConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BoardConfig{}, err
	}
	return cfg, nil
}

func (c BoardConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("api_url is required"))
	} else if u, err := url.Parse(c.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIBaseURL))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("http_timeout must not be negative"))
	}
	if c.SignupMessageTTL <= 0 {
		errs = append(errs, errors.New("signup_message_ttl must be positive"))
	}
	if c.UnregisterMessageTTL <= 0 {
		errs = append(errs, errors.New("unregister_message_ttl must be positive"))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps debug|info|warn|error to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", s)
	}
}
