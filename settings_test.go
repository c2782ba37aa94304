package godeco

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	t.Run("it should apply defaults", func(t *testing.T) {
		// GIVEN

		// WHEN
		settings, err := LoadSettings()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "info", settings.LogLevel)
		assert.Equal(t, "transient", settings.DefaultLifetime)
		assert.False(t, settings.ValidateScopes)
	})

	t.Run("it should load settings from env vars", func(t *testing.T) {
		// GIVEN
		t.Setenv("GODECO_LOG_LEVEL", "debug")
		t.Setenv("GODECO_VALIDATE_SCOPES", "true")
		t.Setenv("GODECO_DEFAULT_LIFETIME", "singleton")

		// WHEN
		settings, err := LoadSettings()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "debug", settings.LogLevel)
		assert.True(t, settings.ValidateScopes)
		assert.Equal(t, "singleton", settings.DefaultLifetime)
	})

	t.Run("it should configure collections and resolvers", func(t *testing.T) {
		// GIVEN
		t.Setenv("GODECO_VALIDATE_SCOPES", "true")
		t.Setenv("GODECO_DEFAULT_LIFETIME", "scoped")
		settings, err := LoadSettings()
		require.NoError(t, err)
		var out bytes.Buffer

		// WHEN
		opts, err := settings.CollectionOptions(&out)
		require.NoError(t, err)
		resolver := NewServiceCollection(opts...).
			MustRegister(NewTestService).
			Build(settings.ResolverOptions()...)

		// THEN
		_, err = Resolve[*TestService](resolver)
		assert.ErrorIs(t, err, ErrScopedFromRoot)
	})

	t.Run("it should fail on an invalid log level", func(t *testing.T) {
		// GIVEN
		settings := &Settings{LogLevel: "loud", DefaultLifetime: "transient"}

		// WHEN
		_, err := settings.CollectionOptions(&bytes.Buffer{})

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("it should fail on an invalid default lifetime", func(t *testing.T) {
		// GIVEN
		settings := &Settings{LogLevel: "info", DefaultLifetime: "forever"}

		// WHEN
		_, err := settings.CollectionOptions(&bytes.Buffer{})

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown lifetime")
	})

	t.Run("it should log at the configured level", func(t *testing.T) {
		// GIVEN
		settings := &Settings{LogLevel: "warn"}
		var out bytes.Buffer
		logger, err := settings.Logger(&out)
		require.NoError(t, err)

		// WHEN
		logger.Info().Msg("hidden")
		logger.Warn().Msg("shown")

		// THEN
		assert.NotContains(t, out.String(), "hidden")
		assert.Contains(t, out.String(), "shown")
	})
}
