package godeco

import (
	"errors"
	"fmt"
	"reflect"
)

type (
	// Instantiator builds a component by calling its constructor.
	//
	// Every parameter of the constructor is resolved from the resolver, except the slots
	// listed in pinned, whose values are used verbatim.
	Instantiator interface {
		Construct(r *Resolver, constructor any, pinned map[int]any) (any, error)
	}

	reflectInstantiator struct{}
)

// NewInstantiator returns the reflection based Instantiator.
func NewInstantiator() Instantiator {
	return reflectInstantiator{}
}

func (reflectInstantiator) Construct(r *Resolver, constructor any, pinned map[int]any) (any, error) {
	if err := validateConstructor(constructor); err != nil {
		return nil, err
	}

	var (
		fnValue = reflect.ValueOf(constructor)
		t       = fnValue.Type()
		fnName  = funcName(constructor)
	)
	for slot := range pinned {
		if slot < 0 || slot >= t.NumIn() {
			return nil, fmt.Errorf("pinned slot %d is out of range for %s with %d parameter(s)", slot, fnName, t.NumIn())
		}
	}

	parameters := make([]reflect.Value, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		paramTyp := t.In(i)
		if value, found := pinned[i]; found {
			v := valueFor(value, paramTyp)
			if !v.Type().AssignableTo(paramTyp) {
				return nil, fmt.Errorf("pinned value %T is not assignable to parameter %d (%s) of %s", value, i, paramTyp, fnName)
			}
			parameters[i] = v
			continue
		}

		dep, err := r.resolveType(paramTyp)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parameter %d (%s) of %s:\n\t%w", i, paramTyp, fnName, err)
		}
		parameters[i] = valueFor(dep, paramTyp)
	}

	// panic recovery, as `Call` can panic if the constructor has a panic
	var results []reflect.Value
	var callErr error

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				callErr = fmt.Errorf("panic calling constructor %s: %v", fnName, rec)
			}
		}()
		results = fnValue.Call(parameters)
	}()

	if callErr != nil {
		return nil, callErr
	}

	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}

func validateConstructor(constructor any) error {
	if constructor == nil {
		return fmt.Errorf("%w: constructor is nil", ErrInvalidConstructor)
	}
	t := reflect.TypeOf(constructor)
	if t.Kind() != reflect.Func {
		return fmt.Errorf("%w: constructor must be a function, got %T", ErrInvalidConstructor, constructor)
	}
	if reflect.ValueOf(constructor).IsNil() {
		return fmt.Errorf("%w: constructor is a nil function", ErrInvalidConstructor)
	}
	if t.IsVariadic() {
		return fmt.Errorf("%w: variadic constructors are not supported", ErrInvalidConstructor)
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return errors.Join(ErrInvalidConstructor, errors.New("constructor must either return the instance and an error, or just the instance"))
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return errors.Join(ErrInvalidConstructor, errors.New("if constructor returns two elements, it must return an error as the second element"))
	}
	return nil
}
