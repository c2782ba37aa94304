// Package option implements the variadic functional options pattern.
package option

// Option modifies options of type T.
type Option[T any] func(opts *T)

// Build applies opts, in order, to defaultOpts and returns it.
func Build[T any](defaultOpts *T, opts ...Option[T]) *T {
	for _, opt := range opts {
		if opt != nil {
			opt(defaultOpts)
		}
	}
	return defaultOpts
}

// Prepend returns opts preceded by first, so that opts can override what first sets.
func Prepend[T any](first Option[T], opts ...Option[T]) []Option[T] {
	return append([]Option[T]{first}, opts...)
}
