package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// overrideFromEnv copies environment variables named by `env` tags into cfg.
// A tag may list several names separated by commas; the first one set wins,
// so `env:"SERVER_PORT,PORT"` honours the platform PORT convention.
// Every bad value is reported, not only the first.
func overrideFromEnv(cfg *Config) error {
	return applyEnv(reflect.ValueOf(cfg).Elem())
}

func applyEnv(section reflect.Value) error {
	var errs error
	sectionType := section.Type()

	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := sectionType.Field(i)

		if field.Kind() == reflect.Struct && field.Type() != durationType {
			errs = errors.Join(errs, applyEnv(field))
			continue
		}

		name, raw, ok := lookupEnv(meta.Tag.Get("env"))
		if !ok {
			continue
		}
		if err := assign(field, raw); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errs
}

// lookupEnv returns the first variable of a comma separated tag that is set
func lookupEnv(tag string) (name, value string, ok bool) {
	if tag == "" {
		return "", "", false
	}
	for _, candidate := range strings.Split(tag, ",") {
		candidate = strings.TrimSpace(candidate)
		if value, ok := os.LookupEnv(candidate); ok {
			return candidate, value, true
		}
	}
	return "", "", false
}

func assign(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return errors.New("field is not settable")
	}

	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.String:
		field.SetString(raw)
	case field.CanInt():
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		field.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
