package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/nullable"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})

		v.RegisterCustomTypeFunc(nullableValue[string], nullable.Nullable[string]{})
		v.RegisterCustomTypeFunc(nullableValue[float64], nullable.Nullable[float64]{})
		v.RegisterCustomTypeFunc(nullableValue[domain.TankType], nullable.Nullable[domain.TankType]{})

		// Registration only fails on empty tags or nil funcs.
		_ = v.RegisterValidation("password", strongPassword)
		_ = v.RegisterValidation("notblank", notBlank)

		validate = v
	})
	return validate
}

// nullableValue exposes the wrapped value of a specified, non-null field.
// Unspecified and null fields become a nil *T so that `omitnil` skips them.
func nullableValue[T any](field reflect.Value) any {
	n, ok := field.Interface().(nullable.Nullable[T])
	if !ok || !n.IsSpecified() || n.IsNull() {
		return (*T)(nil)
	}
	v, err := n.Get()
	if err != nil {
		return (*T)(nil)
	}
	return v
}

// strongPassword requires MinPasswordLength characters with at least one
// lowercase letter, one uppercase letter and one digit.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
