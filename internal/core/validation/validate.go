package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

// Result is the outcome of Validate. Data is meaningful only when Success is true.
type Result[T any] struct {
	Success bool
	Data    T
	Errors  []string
}

// Error is returned by ValidateOrError.
type Error struct {
	Context    string
	Violations []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Context, strings.Join(e.Violations, ", "))
}

// Fields maps each violation path to its message. Root violations are keyed "(root)".
func (e *Error) Fields() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		path, msg, _ := strings.Cut(v, ": ")
		if _, dup := out[path]; !dup {
			out[path] = msg
		}
	}
	return out
}

// ResponseError reports an API response that did not match its schema.
type ResponseError struct {
	Endpoint   string
	Violations []string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("Invalid %s response format", e.Endpoint)
}

// Validate checks data against the schema T.
//
// data may be a T, a *T, raw JSON ([]byte, json.RawMessage, string) or any
// value that marshals to JSON. It never panics.
func Validate[T any](data any) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = Result[T]{Data: zero, Errors: []string{fmt.Sprintf("%s: %v", rootPath, r)}}
		}
	}()

	value, violations := coerce[T](data)
	if len(violations) > 0 {
		return Result[T]{Errors: violations}
	}

	if violations := check(value); len(violations) > 0 {
		return Result[T]{Errors: violations}
	}
	return Result[T]{Success: true, Data: value}
}

// ValidateOrError is Validate returning a single *Error on failure.
func ValidateOrError[T any](data any, context string) (T, error) {
	res := Validate[T](data)
	if !res.Success {
		var zero T
		return zero, &Error{Context: context, Violations: res.Errors}
	}
	return res.Data, nil
}

// SafeValidate reports only whether data matches T.
func SafeValidate[T any](data any) (T, bool) {
	res := Validate[T](data)
	return res.Data, res.Success
}

// ValidateResponse validates an API response body, logging the violations
// and returning a *ResponseError on failure.
func ValidateResponse[T any](data any, endpoint string) (T, error) {
	res := Validate[T](data)
	if !res.Success {
		logger.Error("api response validation failed",
			"endpoint", endpoint,
			"violations", res.Errors)
		var zero T
		return zero, &ResponseError{Endpoint: endpoint, Violations: res.Errors}
	}
	return res.Data, nil
}

// coerce turns data into a T, decoding JSON where needed.
func coerce[T any](data any) (T, []string) {
	var value T

	switch d := data.(type) {
	case T:
		return d, nil
	case *T:
		if d == nil {
			return value, []string{rootPath + ": is required"}
		}
		return *d, nil
	case json.RawMessage:
		return decode[T](d)
	case []byte:
		return decode[T](d)
	case string:
		return decode[T]([]byte(d))
	case nil:
		return value, []string{rootPath + ": is required"}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return value, []string{fmt.Sprintf("%s: cannot encode value: %v", rootPath, err)}
	}
	return decode[T](raw)
}

func decode[T any](raw []byte) (T, []string) {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			path := typeErr.Field
			if path == "" {
				path = rootPath
			}
			return value, []string{fmt.Sprintf("%s: expected %s, got %s", path, typeName(typeErr.Type), typeErr.Value)}
		}
		return value, []string{fmt.Sprintf("%s: invalid JSON: %v", rootPath, err)}
	}
	return value, nil
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}

// check runs struct validation on structs and element validation on slices of structs.
func check(value any) []string {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	var err error
	switch rv.Kind() {
	case reflect.Struct:
		err = instance().Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		elem := rv.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct || rv.Len() == 0 {
			return nil
		}
		err = instance().Var(rv.Interface(), "dive")
	default:
		return nil
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("%s: %v", rootPath, err)}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, violation(fe))
	}
	return out
}
