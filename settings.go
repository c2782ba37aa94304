package godeco

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-peyrard/godeco/config"
	"github.com/a-peyrard/godeco/option"
	"github.com/rs/zerolog"
)

const SettingsEnvPrefix = "GODECO"

// Settings configures collections and resolvers from the environment
// (GODECO_LOG_LEVEL, GODECO_VALIDATE_SCOPES, GODECO_DEFAULT_LIFETIME).
type Settings struct {
	LogLevel        string `mapstructure:"log_level"`
	ValidateScopes  bool   `mapstructure:"validate_scopes"`
	DefaultLifetime string `mapstructure:"default_lifetime"`
}

func (s *Settings) ApplyDefault() {
	if s.LogLevel == "" {
		s.LogLevel = zerolog.InfoLevel.String()
	}
	if s.DefaultLifetime == "" {
		s.DefaultLifetime = Transient.String()
	}
}

func LoadSettings() (*Settings, error) {
	settings, err := config.Load[Settings](config.WithEnvPrefix(SettingsEnvPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings:\n\t%w", err)
	}
	return settings, nil
}

// Logger creates a console logger writing to w at the configured level.
func (s *Settings) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %s: %w", s.LogLevel, err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func (s *Settings) CollectionOptions(w io.Writer) ([]option.Option[CollectionOptions], error) {
	logger, err := s.Logger(w)
	if err != nil {
		return nil, err
	}
	lifetime, err := ParseLifetime(s.DefaultLifetime)
	if err != nil {
		return nil, err
	}
	return []option.Option[CollectionOptions]{
		WithLogger(logger),
		WithDefaultLifetime(lifetime),
	}, nil
}

func (s *Settings) ResolverOptions() []option.Option[ResolverOptions] {
	return []option.Option[ResolverOptions]{
		ValidateScopes(s.ValidateScopes),
	}
}
