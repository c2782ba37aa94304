package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/a-peyrard/godeco"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GODECO_LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	t.Run("it should greet through one decorator by default", func(t *testing.T) {
		// GIVEN / WHEN
		out, err := executeRoot(t)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello world!\n", out)
	})

	t.Run("it should chain the requested number of decorators", func(t *testing.T) {
		// GIVEN / WHEN
		out, err := executeRoot(t, "--decorations", "3", "--shout", "--name", "alice,bob")

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "HELLO ALICE!!!\nHELLO BOB!!!\n", out)
	})

	t.Run("it should describe the registrations", func(t *testing.T) {
		// GIVEN / WHEN
		out, err := executeRoot(t, "--describe", "--lifetime", "scoped")

		// THEN
		require.NoError(t, err)
		assert.Contains(t, out, "* Registrations:")
		assert.Equal(t, 3, strings.Count(out, "main.Greeter (lifetime=scoped)"))
	})

	t.Run("it should reject a negative number of decorations", func(t *testing.T) {
		// GIVEN / WHEN
		_, err := executeRoot(t, "--decorations=-1")

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decorations must not be negative, got -1")
	})

	t.Run("it should accept zero decorations", func(t *testing.T) {
		// GIVEN / WHEN
		out, err := executeRoot(t, "--decorations", "0")

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello world\n", out)
	})

	t.Run("it should reject an unknown lifetime", func(t *testing.T) {
		// GIVEN / WHEN
		_, err := executeRoot(t, "--lifetime", "forever")

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown lifetime")
	})
}

type failingCloser struct{}

func (failingCloser) Close() error {
	return errors.New("cannot close")
}

func TestCloseLogged(t *testing.T) {
	t.Run("it should log the close error", func(t *testing.T) {
		// GIVEN
		var out bytes.Buffer
		logger := zerolog.New(&out)

		// WHEN
		closeLogged(logger, "scope", failingCloser{})

		// THEN
		assert.Contains(t, out.String(), "failed to close scope")
		assert.Contains(t, out.String(), "cannot close")
	})

	t.Run("it should stay silent when closing succeeds", func(t *testing.T) {
		// GIVEN
		var out bytes.Buffer
		logger := zerolog.New(&out)

		// WHEN
		closeLogged(logger, "scope", godeco.NewServiceCollection().Build())

		// THEN
		assert.Empty(t, out.String())
	})
}
