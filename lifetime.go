package godeco

import (
	"fmt"
	"strings"
)

// Lifetime is the resolution frequency policy of a registration.
type Lifetime int

const (
	// Transient creates a new instance on every resolution.
	Transient Lifetime = iota
	// Scoped creates one instance per scope.
	Scoped
	// Singleton creates one instance for the whole resolver.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("lifetime(%d)", int(l))
	}
}

// ParseLifetime parses the name of a lifetime, case-insensitive.
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transient":
		return Transient, nil
	case "scoped":
		return Scoped, nil
	case "singleton":
		return Singleton, nil
	default:
		return Transient, fmt.Errorf("unknown lifetime %q, expected one of transient, scoped, singleton", s)
	}
}
