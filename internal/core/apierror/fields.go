package apierror

import (
	"errors"
	"fmt"
)

// GeneralField holds the message that belongs to no single field.
const GeneralField = "general"

const fallbackFormMessage = "An unexpected error occurred. Please try again."

// FieldErrors flattens a failure into per-field messages for inline display.
//
// From a structured response body it takes the `errors` object (field to
// message), `fieldErrors` entries ({field, message}) and `message` as
// GeneralField. Without a response body the error text becomes GeneralField.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var te *TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		if sb, ok := DecodeBody(te.Body).(StructuredBody); ok {
			addErrors(out, sb.Errors)
			if sb.Message != "" {
				out[GeneralField] = sb.Message
			}
			addFieldViolations(out, sb.FieldErrors)
			return out
		}
	}

	switch {
	case err != nil && err.Error() != "":
		out[GeneralField] = err.Error()
	default:
		out[GeneralField] = fallbackFormMessage
	}
	return out
}

func addErrors(out map[string]string, v any) {
	switch errs := v.(type) {
	case map[string]any:
		for field, msg := range errs {
			out[field] = stringify(msg)
		}
	case []any:
		// Some endpoints send a list of {field, message} instead of an object.
		addFieldViolations(out, errs)
	}
}

func addFieldViolations(out map[string]string, v any) {
	list, ok := v.([]any)
	if !ok {
		return
	}
	for _, item := range list {
		fe, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field, _ := fe["field"].(string)
		if field == "" {
			continue
		}
		out[field] = stringify(fe["message"])
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return stringify(t[0])
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
