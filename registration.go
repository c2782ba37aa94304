package godeco

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/godeco/option"
)

type (
	// Registration binds a service type to a construction strategy and a lifetime.
	//
	// A Registration is never mutated once created, decorating a service appends a new one.
	Registration struct {
		serviceType reflect.Type
		lifetime    Lifetime
		strategy    Strategy

		description string
	}

	RegistrationOptions struct {
		serviceType reflect.Type
		lifetime    Lifetime
		description string
	}
)

// As registers the constructor under the service type I instead of its result type.
func As[I any]() option.Option[RegistrationOptions] {
	return func(opts *RegistrationOptions) {
		opts.serviceType = TypeOf[I]()
	}
}

func WithLifetime(lifetime Lifetime) option.Option[RegistrationOptions] {
	return func(opts *RegistrationOptions) {
		opts.lifetime = lifetime
	}
}

func Description(description string) option.Option[RegistrationOptions] {
	return func(opts *RegistrationOptions) {
		opts.description = description
	}
}

// NewTypeRegistration creates a registration built by constructor, whose parameters are
// resolved from the resolver.
func NewTypeRegistration(constructor any, opts ...option.Option[RegistrationOptions]) (*Registration, error) {
	if err := validateConstructor(constructor); err != nil {
		return nil, err
	}
	implementation := reflect.TypeOf(constructor).Out(0)

	options := option.Build(
		&RegistrationOptions{
			serviceType: implementation,
			lifetime:    Transient,
		},
		opts...,
	)
	if !assignable(implementation, options.serviceType) {
		return nil, fmt.Errorf("%w: %s does not implement %s", ErrInvalidConstructor, implementation, options.serviceType)
	}

	return &Registration{
		serviceType: options.serviceType,
		lifetime:    options.lifetime,
		strategy:    TypeStrategy{constructor: constructor},
		description: options.description,
	}, nil
}

// NewFactoryRegistration creates a registration of serviceType built by factory.
func NewFactoryRegistration(serviceType reflect.Type, lifetime Lifetime, factory Factory) *Registration {
	return &Registration{
		serviceType: serviceType,
		lifetime:    lifetime,
		strategy:    FactoryStrategy{factory: factory},
	}
}

// NewInstanceRegistration creates a singleton registration of serviceType always returning instance.
func NewInstanceRegistration(serviceType reflect.Type, instance any) *Registration {
	return &Registration{
		serviceType: serviceType,
		lifetime:    Singleton,
		strategy:    InstanceStrategy{instance: instance},
	}
}

func (r *Registration) ServiceType() reflect.Type {
	return r.serviceType
}

func (r *Registration) Lifetime() Lifetime {
	return r.lifetime
}

func (r *Registration) Strategy() Strategy {
	return r.strategy
}

func (r *Registration) Description() string {
	return r.description
}

func (r *Registration) String() string {
	return fmt.Sprintf("(%s, %s, %s)", r.serviceType, r.lifetime, r.strategy)
}
