// Package runner runs resolved components concurrently.
package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type (
	// Runnable represents a component that can be run with a context.
	Runnable interface {
		Run(ctx context.Context) error
	}

	// Func adapts a function to a Runnable.
	Func func(ctx context.Context) error
)

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// The first error cancels the context given to the other runnables and is returned.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	return RunAllLimit(parentCtx, -1, runnables...)
}

// RunAllLimit is RunAll with at most limit runnables running at once, a negative limit
// means no limit.
func RunAllLimit(parentCtx context.Context, limit int, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)
	group.SetLimit(limit)

	for _, runnable := range runnables {
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}
