package godeco

import (
	"fmt"
	"reflect"
	"time"

	"github.com/a-peyrard/godeco/option"
	"github.com/rs/zerolog"
)

type (
	// Resolver builds the components described by a ServiceCollection.
	//
	// A Resolver is either the root, owning singletons, or a scope created with NewScope.
	// It is the resolution context handed to factories and constructors, and is safe for
	// concurrent use.
	Resolver struct {
		core  *resolverCore
		scope *Store
		root  bool

		tracker *Tracker
	}

	resolverCore struct {
		registrations map[reflect.Type][]*Registration
		instantiator  Instantiator
		logger        zerolog.Logger

		validateScopes bool

		singletons *Store
		lock       *LockManager
	}

	ResolverOptions struct {
		validateScopes bool
	}
)

// ValidateScopes makes resolving a Scoped registration from the root resolver an error.
func ValidateScopes(validate bool) option.Option[ResolverOptions] {
	return func(opts *ResolverOptions) {
		opts.validateScopes = validate
	}
}

// Build creates the root resolver from a snapshot of the collection.
func (s *ServiceCollection) Build(opts ...option.Option[ResolverOptions]) *Resolver {
	options := option.Build(&ResolverOptions{}, opts...)

	registrations := make(map[reflect.Type][]*Registration)
	for _, reg := range s.registrations {
		registrations[reg.serviceType] = append(registrations[reg.serviceType], reg)
	}

	singletons := NewStore()
	return &Resolver{
		core: &resolverCore{
			registrations:  registrations,
			instantiator:   s.instantiator,
			logger:         s.logger,
			validateScopes: options.validateScopes,
			singletons:     singletons,
			lock:           NewLockManager(),
		},
		scope: singletons,
		root:  true,
	}
}

// NewScope creates a scope sharing the singletons of r.
func (r *Resolver) NewScope() *Resolver {
	return &Resolver{
		core:  r.core,
		scope: NewStore(),
	}
}

// Close closes the components owned by r: singletons for the root, scoped and transient
// components for a scope.
func (r *Resolver) Close() error {
	return r.scope.Close()
}

// Resolve attempts to resolve a component of type T from the resolver.
func Resolve[T any](r *Resolver) (T, error) {
	var zero T
	lookFor := TypeOf[T]()

	val, err := r.resolveType(lookFor)
	if err != nil {
		return zero, fmt.Errorf("failed to resolve %s:\n\t%w", lookFor, err)
	}
	return unReflect[T](val)
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](r *Resolver) T {
	val, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return val
}

// TryResolve attempts to resolve a component of type T from the resolver.
//
// It returns the resolved value, a boolean indicating if it was found, and an error if any occurred during resolution.
func TryResolve[T any](r *Resolver) (value T, found bool, err error) {
	lookFor := TypeOf[T]()
	if len(r.core.registrations[lookFor]) == 0 && lookFor != ResolverType {
		return value, false, nil
	}

	value, err = Resolve[T](r)
	return value, err == nil, err
}

// ResolveAll resolves every registration of T, in registration order.
func ResolveAll[T any](r *Resolver) ([]T, error) {
	lookFor := TypeOf[T]()

	registrations := r.core.registrations[lookFor]
	all := make([]T, len(registrations))
	for i, reg := range registrations {
		val, err := r.resolveRegistration(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s (registration %d):\n\t%w", lookFor, i, err)
		}
		if all[i], err = unReflect[T](val); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (r *Resolver) resolveType(typ reflect.Type) (any, error) {
	if typ == ResolverType {
		return r.withTracker(nil), nil
	}

	registrations := r.core.registrations[typ]
	if len(registrations) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoRegistration, typ)
	}
	return r.resolveRegistration(registrations[len(registrations)-1])
}

func (r *Resolver) resolveRegistration(reg *Registration) (comp any, err error) {
	start := time.Now()

	tracker := NewTracker()
	if r.tracker.Active() {
		tracker = NewTrackerFrom(r.tracker)
	}
	if err = tracker.Push(reg.serviceType); err != nil {
		return nil, fmt.Errorf("dependency cycle detected when resolving %s:\n\t%w", reg.serviceType, err)
	}
	defer tracker.Finish()

	switch reg.lifetime {
	case Transient:
		comp, err = r.withTracker(tracker).build(reg)
		if err == nil {
			r.track(reg, r.scope, comp)
		}
	case Scoped:
		if r.root && r.core.validateScopes {
			return nil, fmt.Errorf("%w: %s", ErrScopedFromRoot, reg)
		}
		comp, err = r.withTracker(tracker).cached(r.scope, reg)
	case Singleton:
		comp, err = r.rootView().withTracker(tracker).cached(r.core.singletons, reg)
	default:
		return nil, fmt.Errorf("unknown lifetime %s for %s", reg.lifetime, reg)
	}
	if err != nil {
		return nil, err
	}

	r.core.logger.Debug().
		Stringer("service", reg.serviceType).
		Stringer("lifetime", reg.lifetime).
		Dur("took", time.Since(start)).
		Msg("component resolved")

	return comp, nil
}

func (r *Resolver) cached(store *Store, reg *Registration) (any, error) {
	if comp, found := store.Get(reg); found {
		return comp, nil
	}

	lock := r.core.lock.GetLockFor(store, reg)
	lock.Lock()
	defer func() {
		lock.Unlock()
		r.core.lock.ReleaseLock(store, reg) // no need to keep the lock, the component is stored
	}()

	// now that we have the lock, check if the component was built while we were waiting
	if comp, found := store.Get(reg); found {
		return comp, nil
	}

	comp, err := r.build(reg)
	if err != nil {
		return nil, err
	}
	store.Put(reg, comp)
	r.track(reg, store, comp)

	return comp, nil
}

func (r *Resolver) build(reg *Registration) (any, error) {
	comp, err := producerFor(reg, r.core.instantiator)(r)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s:\n\t%w", reg, err)
	}
	return comp, nil
}

// track registers comp for closing, values handed over through RegisterInstance are
// owned by the caller.
func (r *Resolver) track(reg *Registration, store *Store, comp any) {
	if _, isInstance := reg.strategy.(InstanceStrategy); isInstance {
		return
	}
	store.Track(comp)
}

func (r *Resolver) withTracker(tracker *Tracker) *Resolver {
	if r.tracker == tracker {
		return r
	}
	view := *r
	view.tracker = tracker
	return &view
}

func (r *Resolver) rootView() *Resolver {
	if r.root {
		return r
	}
	view := *r
	view.scope = r.core.singletons
	view.root = true
	return &view
}
