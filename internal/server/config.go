package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from the environment.
type Config struct {
	Addr       string        `env:"DYNFORM_ADDR" env-default:":8080" env-description:"listen address"`
	FormsDir   string        `env:"DYNFORM_FORMS_DIR" env-default:"forms" env-description:"directory of form documents"`
	OpenAPI    string        `env:"DYNFORM_OPENAPI" env-description:"OpenAPI document path or URL"`
	ThemeFile  string        `env:"DYNFORM_THEME_FILE" env-description:"theme manifest (YAML or JSON)"`
	ThemeName  string        `env:"DYNFORM_THEME" env-description:"theme name"`
	Variant    string        `env:"DYNFORM_THEME_VARIANT" env-description:"theme variant"`
	SessionTTL time.Duration `env:"DYNFORM_SESSION_TTL" env-default:"30m" env-description:"idle lifetime of a form session"`
	LogLevel   string        `env:"DYNFORM_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	LogFormat  string        `env:"DYNFORM_LOG_FORMAT" env-default:"json" env-description:"json or text"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return &cfg, nil
}

// Usage describes the environment variables.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
