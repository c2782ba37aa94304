package godeco

import (
	"fmt"
	"reflect"
)

var (
	ErrorType    = TypeOf[error]()
	ResolverType = TypeOf[*Resolver]()
)

type (
	// Closeable is an interface that can be used to close resources.
	Closeable interface {
		Close() error
	}
)

// TypeOf returns the reflect.Type of I, interfaces included.
func TypeOf[I any]() reflect.Type {
	var i I
	t := reflect.TypeOf(i)
	if t == nil {
		t = reflect.TypeOf((*I)(nil)).Elem()
	}
	return t
}

func assignable(from, to reflect.Type) bool {
	if from == to {
		return true
	}
	if to.Kind() == reflect.Interface && from.Implements(to) {
		return true
	}
	return from.AssignableTo(to)
}

// valueFor converts v to a reflect.Value usable for a slot of type typ.
// A nil v becomes the zero value of typ.
func valueFor(v any, typ reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(v)
}

func unReflect[T any](v any) (res T, err error) {
	if v == nil {
		return res, nil
	}
	res, ok := v.(T)
	if !ok {
		return res, fmt.Errorf("value %v (%T) is not of type %s", v, v, TypeOf[T]())
	}
	return res, nil
}
