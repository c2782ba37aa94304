package main

import (
	"context"
	"fmt"

	"github.com/a-peyrard/godeco"
	"github.com/a-peyrard/godeco/option"
	"github.com/a-peyrard/godeco/runner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type playgroundFlags struct {
	decorations int
	shout       bool
	lifetime    string
	names       []string
	describe    bool
}

func newRootCmd() *cobra.Command {
	flags := &playgroundFlags{}

	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Decorate a greeter service and resolve it",
		Long: `playground registers a greeter, decorates it the requested number of times,
then resolves it from one scope per name and greets every name concurrently.

Settings are read from GODECO_LOG_LEVEL, GODECO_VALIDATE_SCOPES and GODECO_DEFAULT_LIFETIME.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.decorations, "decorations", "d", 1, "Number of exclaiming decorators to apply")
	cmd.Flags().BoolVar(&flags.shout, "shout", false, "Add a shouting decorator on top")
	cmd.Flags().StringVarP(&flags.lifetime, "lifetime", "l", "", "Lifetime of the base greeter (transient, scoped, singleton), defaults to the configured default lifetime")
	cmd.Flags().StringSliceVarP(&flags.names, "name", "n", []string{"world"}, "Names to greet")
	cmd.Flags().BoolVar(&flags.describe, "describe", false, "Print the registrations before resolving")

	return cmd
}

func run(cmd *cobra.Command, flags *playgroundFlags) error {
	if flags.decorations < 0 {
		return fmt.Errorf("decorations must not be negative, got %d", flags.decorations)
	}

	settings, err := godeco.LoadSettings()
	if err != nil {
		return err
	}
	collectionOpts, err := settings.CollectionOptions(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger, err := settings.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	services := godeco.NewServiceCollection(collectionOpts...)
	godeco.RegisterInstance(services, Prefix("Hello"))
	godeco.RegisterInstance(services, logger)

	registerOpts := []option.Option[godeco.RegistrationOptions]{godeco.As[Greeter]()}
	if flags.lifetime != "" {
		lifetime, err := godeco.ParseLifetime(flags.lifetime)
		if err != nil {
			return err
		}
		registerOpts = append(registerOpts, godeco.WithLifetime(lifetime))
	}
	if err := services.Register(NewBaseGreeter, registerOpts...); err != nil {
		return err
	}

	for i := 0; i < flags.decorations; i++ {
		godeco.MustDecorate[Greeter](services, NewExclaimingGreeter)
	}
	if flags.shout {
		godeco.MustDecorate[Greeter](services, NewShoutingGreeter)
	}
	godeco.MustDecorate[Greeter](services, NewLoggingGreeter)

	if flags.describe {
		fmt.Fprint(cmd.OutOrStdout(), services.Describe())
	}

	resolver := services.Build(settings.ResolverOptions()...)
	defer closeLogged(logger, "resolver", resolver)

	greetings := make([]string, len(flags.names))
	runnables := make([]runner.Runnable, len(flags.names))
	for i, name := range flags.names {
		runnables[i] = runner.Func(func(context.Context) error {
			scope := resolver.NewScope()
			defer closeLogged(logger, "scope", scope)

			greeter, err := godeco.Resolve[Greeter](scope)
			if err != nil {
				return err
			}
			greetings[i] = greeter.Greet(name)
			return nil
		})
	}
	if err := runner.RunAll(cmd.Context(), runnables...); err != nil {
		return err
	}

	for _, greeting := range greetings {
		fmt.Fprintln(cmd.OutOrStdout(), greeting)
	}
	return nil
}

func closeLogged(logger zerolog.Logger, what string, closeable godeco.Closeable) {
	if err := closeable.Close(); err != nil {
		logger.Error().Err(err).Msgf("failed to close %s", what)
	}
}
