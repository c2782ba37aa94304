// Package config loads configuration structs from environment variables, backed by viper.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/godeco/option"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
	}

	// WithDefault is implemented by configuration structs filling their own defaults,
	// it is called once the environment has been read.
	WithDefault interface {
		ApplyDefault()
	}
)

func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// Load reads a T from the environment.
//
// Every exported field is bound to PREFIX_FIELD_NAME, nested structs add their own field name
// to the variable (PREFIX_PARENT_FIELD). The `mapstructure` tag overrides the field name.
// Nil pointers to nested structs are initialized.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var vT T
	if typ := reflect.TypeOf(vT); typ != nil && typ.Kind() == reflect.Struct {
		if err := bindEnvs(v, options.prefix, typ); err != nil {
			return nil, fmt.Errorf("unable to bind environment of %T:\n\t%w", vT, err)
		}
	}

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	initialize(reflect.ValueOf(&vT))

	return &vT, nil
}

func bindEnvs(v *viper.Viper, envPrefix string, typ reflect.Type, parts ...string) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}
		path := append(parts[:len(parts):len(parts)], name)

		fieldTyp := field.Type
		if fieldTyp.Kind() == reflect.Pointer {
			fieldTyp = fieldTyp.Elem()
		}
		if fieldTyp.Kind() == reflect.Struct {
			if err := bindEnvs(v, envPrefix, fieldTyp, path...); err != nil {
				return err
			}
			continue
		}

		if err := v.BindEnv(strings.Join(path, "."), envName(envPrefix, path)); err != nil {
			return err
		}
	}
	return nil
}

func envName(envPrefix string, path []string) string {
	tokens := make([]string, 0, len(path)+1)
	if envPrefix != "" {
		tokens = append(tokens, strings.ToUpper(envPrefix))
	}
	for _, p := range path {
		tokens = append(tokens, toScreamingSnakeCase(p))
	}
	return strings.Join(tokens, "_")
}

// toScreamingSnakeCase turns CustomerId or customer_id into CUSTOMER_ID.
func toScreamingSnakeCase(in string) string {
	var (
		b         strings.Builder
		separated = true
	)
	for _, c := range strings.TrimSpace(in) {
		if c == '_' || c == '-' {
			if !separated {
				b.WriteByte('_')
				separated = true
			}
			continue
		}
		if 'A' <= c && c <= 'Z' && !separated {
			b.WriteByte('_')
		}
		b.WriteString(strings.ToUpper(string(c)))
		separated = false
	}
	return b.String()
}

func initialize(val reflect.Value) {
	switch val.Kind() {
	case reflect.Pointer:
		if val.Type().Elem().Kind() != reflect.Struct {
			return
		}
		if val.IsNil() {
			if !val.CanSet() {
				return
			}
			val.Set(reflect.New(val.Type().Elem()))
		}
		if withDefault, ok := val.Interface().(WithDefault); ok {
			withDefault.ApplyDefault()
		}
		initializeFields(val.Elem())
	case reflect.Struct:
		if val.CanAddr() {
			if withDefault, ok := val.Addr().Interface().(WithDefault); ok {
				withDefault.ApplyDefault()
			}
		}
		initializeFields(val)
	}
}

func initializeFields(val reflect.Value) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if !typ.Field(i).IsExported() {
			continue
		}
		initialize(val.Field(i))
	}
}
