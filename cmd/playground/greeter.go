package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// -------------------------------------- PLAYGROUND CODE --------------------------------------
// Services used to illustrate decoration: a base greeter wrapped by as many decorators as asked.

type Greeter interface {
	Greet(name string) string
}

type Prefix string

type baseGreeter struct {
	prefix Prefix
}

func NewBaseGreeter(prefix Prefix) *baseGreeter {
	return &baseGreeter{prefix: prefix}
}

func (g *baseGreeter) Greet(name string) string {
	return fmt.Sprintf("%s %s", g.prefix, name)
}

type exclaimingGreeter struct {
	inner Greeter
}

func NewExclaimingGreeter(inner Greeter) Greeter {
	return &exclaimingGreeter{inner: inner}
}

func (g *exclaimingGreeter) Greet(name string) string {
	return g.inner.Greet(name) + "!"
}

type shoutingGreeter struct {
	inner Greeter
}

func NewShoutingGreeter(inner Greeter) Greeter {
	return &shoutingGreeter{inner: inner}
}

func (g *shoutingGreeter) Greet(name string) string {
	return strings.ToUpper(g.inner.Greet(name))
}

type loggingGreeter struct {
	logger zerolog.Logger
	inner  Greeter
}

func NewLoggingGreeter(logger zerolog.Logger, inner Greeter) (Greeter, error) {
	return &loggingGreeter{logger: logger, inner: inner}, nil
}

func (g *loggingGreeter) Greet(name string) string {
	greeting := g.inner.Greet(name)
	g.logger.Info().Str("name", name).Str("greeting", greeting).Msg("greeted")
	return greeting
}
