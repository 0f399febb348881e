package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// loadFromEnvironment fills the config from `env` struct tags, falling
// back to the `default` tag when the variable is unset. Nested config
// sections are walked recursively.
func loadFromEnvironment(config *Config) error {
	return walkFields(reflect.ValueOf(config).Elem())
}

func walkFields(section reflect.Value) error {
	sectionType := section.Type()

	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := sectionType.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && meta.Type.Name() != "Duration" {
			if err := walkFields(field); err != nil {
				return err
			}
			continue
		}

		envName := meta.Tag.Get("env")
		if envName == "" {
			continue
		}

		raw := os.Getenv(envName)
		if raw == "" {
			raw = meta.Tag.Get("default")
		}

		if err := assign(field, raw, envName); err != nil {
			return fmt.Errorf("failed to set field %s: %w", meta.Name, err)
		}
	}

	return nil
}

func assign(field reflect.Value, raw, envName string) error {
	if raw == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", envName, raw)
		}
		field.SetBool(parsed)

	case reflect.Int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", envName, raw)
		}
		field.SetInt(int64(parsed))

	case reflect.Int64:
		// time.Duration fields accept Go duration syntax
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("invalid duration value for %s: %s", envName, raw)
			}
			field.SetInt(int64(duration))
			return nil
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", envName, raw)
		}
		field.SetInt(parsed)

	case reflect.Slice:
		// comma-separated string lists (e.g. TRUSTED_PROXIES)
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s for %s", field.Type().Elem().Kind(), envName)
		}
		parts := strings.Split(raw, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s for %s", field.Kind(), envName)
	}

	return nil
}
