package godeco

import (
	"fmt"
	"reflect"
	"runtime"
)

type (
	// Strategy describes how a Registration obtains its instance.
	//
	// The set of variants is closed: TypeStrategy, FactoryStrategy and InstanceStrategy.
	Strategy interface {
		isStrategy()

		fmt.Stringer
	}

	// Factory builds an instance from a resolution context.
	Factory func(r *Resolver) (any, error)

	// TypeStrategy constructs the implementation through the Instantiator, using the
	// constructor function of the implementation type.
	TypeStrategy struct {
		constructor any
	}

	// FactoryStrategy delegates construction to a caller supplied Factory.
	FactoryStrategy struct {
		factory Factory
	}

	// InstanceStrategy returns one pre-built value for every request.
	InstanceStrategy struct {
		instance any
	}
)

func (TypeStrategy) isStrategy()     {}
func (FactoryStrategy) isStrategy()  {}
func (InstanceStrategy) isStrategy() {}

// Constructor returns the constructor function of the implementation.
func (s TypeStrategy) Constructor() any {
	return s.constructor
}

// Implementation returns the type built by the constructor.
func (s TypeStrategy) Implementation() reflect.Type {
	return reflect.TypeOf(s.constructor).Out(0)
}

func (s TypeStrategy) String() string {
	return fmt.Sprintf("type(%s, %s)", s.Implementation(), funcName(s.constructor))
}

// Factory returns the factory function.
func (s FactoryStrategy) Factory() Factory {
	return s.factory
}

func (s FactoryStrategy) String() string {
	return fmt.Sprintf("factory(%s)", funcName(s.factory))
}

// Instance returns the captured value.
func (s InstanceStrategy) Instance() any {
	return s.instance
}

func (s InstanceStrategy) String() string {
	return fmt.Sprintf("instance(%T)", s.instance)
}

func funcName(f any) string {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
		return fn.Name()
	}
	return "<unknown>"
}
