package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/yndnr/tankmate-go/internal/core/apierror"
	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/core/validation"
)

// API is the transport used by services. *client.Client implements it.
type API interface {
	// Query performs a cached, retried GET.
	Query(ctx context.Context, path string, query url.Values) (json.RawMessage, error)

	// Mutate performs a single non-GET request.
	Mutate(ctx context.Context, method, path string, body any) (json.RawMessage, error)

	// InvalidateAll drops cached queries, e.g. when the user changes.
	InvalidateAll()
}

// Base carries the pipeline shared by all services.
type Base struct {
	api API
}

// NewBase creates a Base.
func NewBase(api API) Base {
	return Base{api: api}
}

// validateRequest checks a request body before it is sent.
func validateRequest[T any](data T) (T, error) {
	return validation.ValidateOrError[T](data, "Request")
}

// execute runs call and normalizes its failure with errorContext.
func (b Base) execute(errorContext string, call func() (json.RawMessage, error)) (json.RawMessage, error) {
	raw, err := call()
	if err != nil {
		return nil, apierror.Normalize(err).WithContext(errorContext)
	}
	return raw, nil
}

// fetch runs a query and validates the response as T.
func fetch[T any](ctx context.Context, b Base, errorContext, endpoint, path string, query url.Values) (T, error) {
	var zero T
	raw, err := b.execute(errorContext, func() (json.RawMessage, error) {
		return b.api.Query(ctx, path, query)
	})
	if err != nil {
		return zero, err
	}
	v, err := validation.ValidateResponse[T](raw, endpoint)
	if err != nil {
		return zero, apierror.Normalize(err).WithContext(errorContext)
	}
	return v, nil
}

// fetchList runs a list query. Both bare arrays and paged envelopes
// ({"content": [...]}, {"data": [...]}, {"items": [...]}) are accepted.
func fetchList[T any](ctx context.Context, b Base, errorContext, endpoint, path string, query url.Values) ([]T, error) {
	raw, err := b.execute(errorContext, func() (json.RawMessage, error) {
		return b.api.Query(ctx, path, query)
	})
	if err != nil {
		return nil, err
	}
	items, err := validation.ValidateResponse[[]T](unwrapList(raw), endpoint)
	if err != nil {
		return nil, apierror.Normalize(err).WithContext(errorContext)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// send runs a mutation and validates the response as T.
func send[T any](ctx context.Context, b Base, errorContext, endpoint, method, path string, body any) (T, error) {
	var zero T
	raw, err := b.execute(errorContext, func() (json.RawMessage, error) {
		return b.api.Mutate(ctx, method, path, body)
	})
	if err != nil {
		return zero, err
	}
	v, err := validation.ValidateResponse[T](raw, endpoint)
	if err != nil {
		return zero, apierror.Normalize(err).WithContext(errorContext)
	}
	return v, nil
}

func unwrapList(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return raw
	}
	for _, key := range []string{"content", "data", "items"} {
		if inner, ok := envelope[key]; ok {
			return inner
		}
	}
	return raw
}

// tankPath builds /tanks/{tankId}[/sub...] with the id path-escaped.
func tankPath(tankID string, sub ...string) (string, error) {
	if strings.TrimSpace(tankID) == "" {
		return "", domain.ErrMissingArgument.WithDetails("tank id")
	}
	seg, err := runtime.StyleParamWithLocation("simple", false, "tankId", runtime.ParamLocationPath, tankID)
	if err != nil {
		return "", domain.ErrInvalidArgument.WithDetails("tank id").WithCause(err)
	}
	p := "/tanks/" + seg
	for _, s := range sub {
		p += "/" + s
	}
	return p, nil
}

// formQuery encodes one query parameter the way generated OpenAPI clients do.
func formQuery(q url.Values, name string, value any) error {
	encoded, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return domain.ErrInvalidArgument.WithDetails(name).WithCause(err)
	}
	parsed, err := url.ParseQuery(encoded)
	if err != nil {
		return domain.ErrInvalidArgument.WithDetails(name).WithCause(err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return nil
}
