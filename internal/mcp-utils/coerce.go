package mcputils

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is an interface for getting arguments from a request
type ArgumentGetter interface {
	GetArguments() map[string]any
}

// CoerceBindArguments binds MCP request arguments to a target struct with proper type coercion.
// MCP clients often send every parameter as a string, including numbers, booleans and
// JSON-encoded arrays; those are converted to the field type.
//
// Binding is strict about shape:
// - keys without a matching field are rejected
// - non-integral numbers are rejected for integer fields
// - booleans accept only true/false (or those exact strings)
// - string fields accept only strings
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			strictScalarHook,
			integralNumberHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json", // Use json tags for field mapping
	})
	if err != nil {
		return err
	}

	return decoder.Decode(request.GetArguments())
}

// jsonStringHook parses string values that hold JSON for slice, map, struct,
// bool and number targets.
func jsonStringHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}

	raw, ok := data.(string)
	if !ok || raw == "" {
		return data, nil
	}
	trimmed := strings.TrimSpace(raw)

	switch t.Kind() {
	case reflect.Slice:
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			slicePtr := reflect.New(t)
			if err := json.Unmarshal([]byte(trimmed), slicePtr.Interface()); err == nil {
				return slicePtr.Elem().Interface(), nil
			}
		}
	case reflect.Map, reflect.Struct:
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			var result any
			if err := json.Unmarshal([]byte(trimmed), &result); err == nil {
				return result, nil
			}
		}
	case reflect.Bool:
		if trimmed == "true" || trimmed == "false" {
			return trimmed == "true", nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		var result json.Number
		if err := json.Unmarshal([]byte(trimmed), &result); err == nil {
			// Let the decoder handle the number conversion
			return result, nil
		}
	}

	return data, nil
}

// strictScalarHook keeps the weak decoder from inventing booleans and strings:
// without it "", 0 and "f" all decode to false, and true decodes to "1".
func strictScalarHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if data == nil {
		return data, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		if _, ok := data.(bool); !ok {
			return nil, fmt.Errorf("expected a boolean, got %#v", data)
		}
	case reflect.String:
		if _, ok := data.(string); !ok {
			return nil, fmt.Errorf("expected a string, got %#v", data)
		}
	}
	return data, nil
}

// integralNumberHook stops the weak decoder from silently truncating 2.5 to 2.
func integralNumberHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if !isIntegerKind(t.Kind()) {
		return data, nil
	}

	switch v := data.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("expected an integer, got %v", v)
		}
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return nil, fmt.Errorf("expected an integer, got %v", v)
		}
	case json.Number:
		if _, err := v.Int64(); err != nil {
			return nil, fmt.Errorf("expected an integer, got %s", v)
		}
	}
	return data, nil
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
