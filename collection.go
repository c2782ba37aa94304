package godeco

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/godeco/option"
	"github.com/rs/zerolog"
)

type (
	// ServiceCollection is the ordered list of registrations a Resolver is built from.
	//
	// When a service type has several registrations, the last one wins. Registrations are only
	// ever appended. A ServiceCollection is not safe for concurrent writes.
	ServiceCollection struct {
		registrations []*Registration

		instantiator    Instantiator
		logger          zerolog.Logger
		defaultLifetime Lifetime
	}

	CollectionOptions struct {
		instantiator    Instantiator
		logger          zerolog.Logger
		defaultLifetime Lifetime
	}
)

func WithLogger(logger zerolog.Logger) option.Option[CollectionOptions] {
	return func(opts *CollectionOptions) {
		opts.logger = logger
	}
}

// WithDefaultLifetime sets the lifetime of constructors registered without WithLifetime.
func WithDefaultLifetime(lifetime Lifetime) option.Option[CollectionOptions] {
	return func(opts *CollectionOptions) {
		opts.defaultLifetime = lifetime
	}
}

// WithInstantiator replaces the reflection based instantiator.
func WithInstantiator(instantiator Instantiator) option.Option[CollectionOptions] {
	return func(opts *CollectionOptions) {
		opts.instantiator = instantiator
	}
}

func NewServiceCollection(opts ...option.Option[CollectionOptions]) *ServiceCollection {
	options := option.Build(
		&CollectionOptions{
			instantiator:    NewInstantiator(),
			logger:          zerolog.Nop(),
			defaultLifetime: Transient,
		},
		opts...,
	)

	return &ServiceCollection{
		registrations:   make([]*Registration, 0),
		instantiator:    options.instantiator,
		logger:          options.logger,
		defaultLifetime: options.defaultLifetime,
	}
}

// Add appends reg to the collection.
func (s *ServiceCollection) Add(reg *Registration) *ServiceCollection {
	s.registrations = append(s.registrations, reg)
	s.logger.Debug().
		Stringer("service", reg.serviceType).
		Stringer("lifetime", reg.lifetime).
		Stringer("strategy", reg.strategy).
		Msg("registration added")
	return s
}

// FindLast returns the most recent registration of serviceType.
func (s *ServiceCollection) FindLast(serviceType reflect.Type) (*Registration, bool) {
	for i := len(s.registrations) - 1; i >= 0; i-- {
		if s.registrations[i].serviceType == serviceType {
			return s.registrations[i], true
		}
	}
	return nil, false
}

// FindAll returns the registrations of serviceType in registration order.
func (s *ServiceCollection) FindAll(serviceType reflect.Type) []*Registration {
	var found []*Registration
	for _, reg := range s.registrations {
		if reg.serviceType == serviceType {
			found = append(found, reg)
		}
	}
	return found
}

func (s *ServiceCollection) Len() int {
	return len(s.registrations)
}

func (s *ServiceCollection) At(index int) *Registration {
	return s.registrations[index]
}

// All returns a copy of the registrations.
func (s *ServiceCollection) All() []*Registration {
	all := make([]*Registration, len(s.registrations))
	copy(all, s.registrations)
	return all
}

// Register adds a registration built by constructor. By default the service type is the
// constructor result type and the lifetime is the collection default lifetime.
func (s *ServiceCollection) Register(constructor any, opts ...option.Option[RegistrationOptions]) error {
	reg, err := NewTypeRegistration(constructor, option.Prepend(WithLifetime(s.defaultLifetime), opts...)...)
	if err != nil {
		return fmt.Errorf("failed to register constructor %s:\n\t%w", funcName(constructor), err)
	}
	s.Add(reg)
	return nil
}

func (s *ServiceCollection) MustRegister(constructor any, opts ...option.Option[RegistrationOptions]) *ServiceCollection {
	err := s.Register(constructor, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to register constructor %T:\n\t%v", constructor, err))
	}
	return s
}

// RegisterFactory adds a registration of T built by factory.
func RegisterFactory[T any](s *ServiceCollection, lifetime Lifetime, factory func(r *Resolver) (T, error)) *ServiceCollection {
	return s.Add(NewFactoryRegistration(TypeOf[T](), lifetime, func(r *Resolver) (any, error) {
		return factory(r)
	}))
}

// RegisterInstance adds a singleton registration of T always resolving to instance.
func RegisterInstance[T any](s *ServiceCollection, instance T) *ServiceCollection {
	return s.Add(NewInstanceRegistration(TypeOf[T](), instance))
}

func (s *ServiceCollection) Describe() string {
	var b strings.Builder
	b.WriteString("* Registrations:\n")
	for i, reg := range s.registrations {
		b.WriteString(fmt.Sprintf("\t%d. %s (lifetime=%s)\n", i, reg.serviceType, reg.lifetime))
		b.WriteString(fmt.Sprintf("\t\tstrategy: %s\n", reg.strategy))
		if desc := reg.description; desc != "" {
			b.WriteString(fmt.Sprintf("\t\tdescription: %s\n", desc))
		}
	}
	return b.String()
}
