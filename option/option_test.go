package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ServerConfig struct {
	Host  string
	Port  int
	Debug bool
}

func WithHost(host string) Option[ServerConfig] {
	return func(opts *ServerConfig) {
		opts.Host = host
	}
}

func WithPort(port int) Option[ServerConfig] {
	return func(opts *ServerConfig) {
		opts.Port = port
	}
}

func TestBuild(t *testing.T) {
	t.Run("it should keep defaults without options", func(t *testing.T) {
		// GIVEN
		defaultConfig := &ServerConfig{Host: "localhost", Port: 8080}

		// WHEN
		result := Build(defaultConfig)

		// THEN
		assert.Same(t, defaultConfig, result)
		assert.Equal(t, "localhost", result.Host)
		assert.Equal(t, 8080, result.Port)
	})

	t.Run("it should apply options in order", func(t *testing.T) {
		// GIVEN
		defaultConfig := &ServerConfig{Host: "localhost", Port: 8080}

		// WHEN
		result := Build(defaultConfig, WithHost("example.com"), WithPort(1), WithPort(2))

		// THEN
		assert.Equal(t, "example.com", result.Host)
		assert.Equal(t, 2, result.Port)
	})

	t.Run("it should skip nil options", func(t *testing.T) {
		// GIVEN
		defaultConfig := &ServerConfig{Host: "localhost"}

		// WHEN
		result := Build(defaultConfig, nil, WithHost("example.com"))

		// THEN
		assert.Equal(t, "example.com", result.Host)
	})
}

func TestPrepend(t *testing.T) {
	t.Run("it should let later options override the prepended one", func(t *testing.T) {
		// GIVEN
		opts := Prepend(WithPort(80), WithPort(443))

		// WHEN
		result := Build(&ServerConfig{}, opts...)

		// THEN
		assert.Len(t, opts, 2)
		assert.Equal(t, 443, result.Port)
	})
}
