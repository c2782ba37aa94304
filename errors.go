package godeco

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrRegistrationNotFound is matched by every RegistrationNotFoundError.
	ErrRegistrationNotFound = errors.New("registration not found")

	ErrInvalidDecorator   = errors.New("invalid decorator")
	ErrInvalidConstructor = errors.New("invalid constructor")
	ErrNoRegistration     = errors.New("no registration for service type")
	ErrScopedFromRoot     = errors.New("scoped service resolved from root resolver")
)

type (
	// RegistrationNotFoundError is returned when decorating a service type that has no registration.
	RegistrationNotFoundError struct {
		ServiceType reflect.Type
	}

	// UnsupportedStrategyError reports a registration whose strategy is none of the known variants.
	// It is raised as a panic: reaching it means a Registration was built outside of this package.
	UnsupportedStrategyError struct {
		Strategy Strategy
	}
)

func (e *RegistrationNotFoundError) Error() string {
	return fmt.Sprintf("%s not registered", e.ServiceType)
}

func (e *RegistrationNotFoundError) Is(target error) bool {
	return target == ErrRegistrationNotFound
}

func (e *UnsupportedStrategyError) Error() string {
	return fmt.Sprintf("unsupported registration strategy %T", e.Strategy)
}
