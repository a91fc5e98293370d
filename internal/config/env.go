package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// envSetter parses raw into a field of one kind
type envSetter func(field reflect.Value, raw string) error

var envSetters = map[reflect.Kind]envSetter{
	reflect.String: func(field reflect.Value, raw string) error {
		field.SetString(raw)
		return nil
	},
	reflect.Int: func(field reflect.Value, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(int64(n))
		return nil
	},
	reflect.Bool: func(field reflect.Value, raw string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
		return nil
	},
	// comma separated, blanks dropped
	reflect.Slice: func(field reflect.Value, raw string) error {
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		items := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))
		return nil
	},
}

// applyEnv overrides every field tagged `env:"NAME"` whose variable is set.
// Nested structs are walked; durations stay strings and are parsed by validateConfig.
func applyEnv(v reflect.Value, path string) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), t.Field(i)
		name := meta.Name
		if path != "" {
			name = path + "." + meta.Name
		}

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field, name); err != nil {
				return err
			}
			continue
		}

		key := meta.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		set, ok := envSetters[field.Kind()]
		if !ok {
			return fmt.Errorf("%s: unsupported field kind %s", name, field.Kind())
		}
		if err := set(field, raw); err != nil {
			return fmt.Errorf("%s from %s: %w", name, key, err)
		}
	}
	return nil
}
