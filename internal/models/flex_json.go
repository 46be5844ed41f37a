package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldMaps caches JSON tag -> struct field index mappings per type
var fieldMaps sync.Map

func jsonFieldMap(t reflect.Type) map[string]int {
	if cached, ok := fieldMaps.Load(t); ok {
		return cached.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		m[name] = i
	}
	fieldMaps.Store(t, m)
	return m
}

// UnmarshalJSON accepts both native and string-encoded numbers. Older
// aggregator runs wrote every value through str(), so "45.6" must decode
// into a float64 field.
func (s *PlayerStats) UnmarshalJSON(data []byte) error {
	type Alias PlayerStats
	return flexUnmarshal(data, (*Alias)(s))
}

func (g *GenerationRecord) UnmarshalJSON(data []byte) error {
	type Alias GenerationRecord
	return flexUnmarshal(data, (*Alias)(g))
}

// flexUnmarshal decodes data into the struct pointed to by target. The Alias
// types above prevent infinite recursion.
func flexUnmarshal(data []byte, target any) error {
	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}

	// Slow path: field-by-field with scalar coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	v := reflect.ValueOf(target).Elem()
	fieldMap := jsonFieldMap(v.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		text := string(rawVal)
		if len(rawVal) > 1 && rawVal[0] == '"' {
			if err := json.Unmarshal(rawVal, &text); err != nil {
				return fmt.Errorf("flex unmarshal %s: %w", key, err)
			}
			if text == "" {
				continue
			}
		}
		if err := coerceField(fv, text); err != nil {
			return fmt.Errorf("flex unmarshal %s: %w", key, err)
		}
	}

	return nil
}

// coerceField parses s, a quoted or bare JSON scalar, into the field's
// native type. Integer fields accept integral floats ("120.0", 120.0).
func coerceField(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		fv.SetFloat(n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return fmt.Errorf("%s is not an integer", s)
		}
		if fv.OverflowInt(int64(n)) {
			return fmt.Errorf("%s overflows %s", s, fv.Kind())
		}
		fv.SetInt(int64(n))
	case reflect.String:
		fv.SetString(s)
	default:
		return fmt.Errorf("cannot coerce %s into %s", s, fv.Type())
	}
	return nil
}
