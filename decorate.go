package godeco

import (
	"fmt"
	"reflect"
)

// Decorate registers decorator as the implementation of TService, wrapping whatever the last
// registration of TService builds.
//
// decorator is the decorator's constructor. Its first parameter of type TService receives the
// wrapped instance, the other parameters are resolved from the resolver. The parameter type must
// be TService itself: a parameter of a wider type (e.g. any) does not receive the wrapped instance.
//
// The new registration copies the lifetime of the wrapped one, which stays in the collection
// untouched but is only reachable through the decorator.
//
// Calling Decorate several times for the same service chains the decorators, the last one
// registered being the outermost.
func Decorate[TService any](services *ServiceCollection, decorator any) (*ServiceCollection, error) {
	serviceType := TypeOf[TService]()

	decorated, found := services.FindLast(serviceType)
	if !found {
		return nil, &RegistrationNotFoundError{ServiceType: serviceType}
	}

	slot, err := decoratedSlot(serviceType, decorator)
	if err != nil {
		return nil, fmt.Errorf("unable to decorate %s with %s:\n\t%w", serviceType, funcName(decorator), err)
	}

	var (
		instantiator = services.instantiator
		inner        = producerFor(decorated, instantiator)
	)
	services.Add(&Registration{
		serviceType: serviceType,
		lifetime:    decorated.lifetime,
		strategy: FactoryStrategy{
			factory: func(r *Resolver) (any, error) {
				comp, err := inner(r)
				if err != nil {
					return nil, fmt.Errorf("failed to build %s decorated by %s:\n\t%w", serviceType, funcName(decorator), err)
				}
				return instantiator.Construct(r, decorator, map[int]any{slot: comp})
			},
		},
		description: fmt.Sprintf("%s decorated by %s", decorated.strategy, funcName(decorator)),
	})

	services.logger.Debug().
		Stringer("service", serviceType).
		Str("decorator", funcName(decorator)).
		Stringer("lifetime", decorated.lifetime).
		Int("depth", len(services.FindAll(serviceType))-1).
		Msg("decorator registered")

	return services, nil
}

// MustDecorate is like Decorate but panics on error.
func MustDecorate[TService any](services *ServiceCollection, decorator any) *ServiceCollection {
	_, err := Decorate[TService](services, decorator)
	if err != nil {
		panic(fmt.Sprintf("failed to decorate %s:\n\t%v", TypeOf[TService](), err))
	}
	return services
}

// producerFor returns the function building the instance described by reg.
func producerFor(reg *Registration, instantiator Instantiator) Factory {
	switch s := reg.strategy.(type) {
	case FactoryStrategy:
		return s.factory
	case InstanceStrategy:
		instance := s.instance
		return func(*Resolver) (any, error) {
			return instance, nil
		}
	case TypeStrategy:
		constructor := s.constructor
		return func(r *Resolver) (any, error) {
			return instantiator.Construct(r, constructor, nil)
		}
	default:
		panic(&UnsupportedStrategyError{Strategy: reg.strategy})
	}
}

// decoratedSlot returns the parameter of decorator receiving the wrapped instance.
func decoratedSlot(serviceType reflect.Type, decorator any) (int, error) {
	if err := validateConstructor(decorator); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDecorator, err)
	}
	t := reflect.TypeOf(decorator)
	if !assignable(t.Out(0), serviceType) {
		return 0, fmt.Errorf("%w: %s does not implement %s", ErrInvalidDecorator, t.Out(0), serviceType)
	}
	for i := 0; i < t.NumIn(); i++ {
		if t.In(i) == serviceType {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no parameter of type %s to receive the decorated instance", ErrInvalidDecorator, serviceType)
}
