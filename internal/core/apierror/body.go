package apierror

import (
	"bytes"
	"encoding/json"
)

// Body is the decoded response body of a failed call: StructuredBody or OpaqueBody.
type Body interface {
	body()
}

// StructuredBody is a JSON object body.
type StructuredBody struct {
	Message     string
	Errors      any // nil when absent
	FieldErrors any // nil when absent
	Fields      map[string]any
}

// OpaqueBody is anything that is not a JSON object, including an empty body.
type OpaqueBody struct {
	Raw []byte
}

func (StructuredBody) body() {}
func (OpaqueBody) body()     {}

// DecodeBody classifies raw.
func DecodeBody(raw []byte) Body {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return OpaqueBody{Raw: raw}
	}

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil || fields == nil {
		return OpaqueBody{Raw: raw}
	}

	sb := StructuredBody{
		Errors:      fields["errors"],
		FieldErrors: fields["fieldErrors"],
		Fields:      fields,
	}
	if msg, ok := fields["message"].(string); ok {
		sb.Message = msg
	}
	return sb
}

// details is the value attached to Error.Details for a body.
func details(b Body) any {
	switch v := b.(type) {
	case StructuredBody:
		return v.Fields
	case OpaqueBody:
		if len(bytes.TrimSpace(v.Raw)) == 0 {
			return nil
		}
		return string(v.Raw)
	default:
		return nil
	}
}
