package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const rootPath = "(root)"

// violation renders one validator error as "path: message".
func violation(fe validator.FieldError) string {
	return fieldPath(fe.Namespace(), fe.StructNamespace()) + ": " + message(fe)
}

// fieldPath drops the root type name validator puts in front of struct
// namespaces. Namespaces produced by Var start with the first index instead.
func fieldPath(ns, structNS string) string {
	if ns == "" {
		return rootPath
	}
	if !strings.HasPrefix(ns, "[") && strings.Contains(structNS, ".") {
		_, rest, found := strings.Cut(ns, ".")
		if !found {
			return rootPath
		}
		ns = rest
	}
	ns = strings.TrimPrefix(ns, ".")
	if ns == "" {
		return rootPath
	}
	return ns
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "password":
		return fmt.Sprintf("must be at least %d characters and contain a lowercase letter, an uppercase letter and a digit", MinPasswordLength)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}
