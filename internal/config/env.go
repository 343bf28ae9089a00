package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// applyEnvOverrides sets every field carrying an `env` tag from the
// environment. A tag may list several names; the first one set wins.
func applyEnvOverrides(cfg any) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	applyEnvToStruct(v)
}

func applyEnvToStruct(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}

		tag := t.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		if val, ok := lookupFirst(strings.Split(tag, ",")); ok {
			setFieldFromString(field, val)
		}
	}
}

func lookupFirst(names []string) (string, bool) {
	for _, name := range names {
		if val := os.Getenv(strings.TrimSpace(name)); val != "" {
			return val, true
		}
	}
	return "", false
}

// setFieldFromString ignores values that do not parse, leaving the field as loaded.
func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			if d, err := time.ParseDuration(val); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(i)
		}

	case reflect.Bool:
		field.SetBool(parseBool(val))

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(val, ",")
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			field.Set(reflect.ValueOf(parts))
		}
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
