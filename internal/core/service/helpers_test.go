package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yndnr/tankmate-go/internal/core/apierror"
	"github.com/yndnr/tankmate-go/internal/core/appctx"
	"github.com/yndnr/tankmate-go/internal/core/session"
	"github.com/yndnr/tankmate-go/internal/storage"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

type apiCall struct {
	method string
	path   string
	query  url.Values
	body   any
}

// fakeAPI answers by "METHOD path" and records every call.
type fakeAPI struct {
	responses   map[string]string
	statuses    map[string]int
	calls       []apiCall
	invalidated int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]string{}, statuses: map[string]int{}}
}

func (f *fakeAPI) on(method, path, body string) *fakeAPI {
	f.responses[method+" "+path] = body
	return f
}

func (f *fakeAPI) fail(method, path string, status int, body string) *fakeAPI {
	f.statuses[method+" "+path] = status
	f.responses[method+" "+path] = body
	return f
}

func (f *fakeAPI) Query(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return f.respond(ctx, http.MethodGet, path, query, nil)
}

func (f *fakeAPI) Mutate(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return f.respond(ctx, method, path, nil, body)
}

func (f *fakeAPI) InvalidateAll() {
	f.invalidated++
}

func (f *fakeAPI) respond(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, &apierror.TransportError{Method: method, URL: path, Err: err}
	}
	f.calls = append(f.calls, apiCall{method: method, path: path, query: query, body: body})
	key := method + " " + path
	if status, ok := f.statuses[key]; ok {
		return nil, &apierror.TransportError{Method: method, URL: path, StatusCode: status, Body: []byte(f.responses[key])}
	}
	resp, ok := f.responses[key]
	if !ok {
		return nil, &apierror.TransportError{Method: method, URL: path, StatusCode: http.StatusNotFound}
	}
	if resp == "" {
		return nil, nil
	}
	return json.RawMessage(resp), nil
}

func (f *fakeAPI) lastCall(t *testing.T) apiCall {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatal("no API call recorded")
	}
	return f.calls[len(f.calls)-1]
}

// bodyJSON re-encodes a recorded request body for inspection.
func bodyJSON(t *testing.T, body any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	return m
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func validToken(t *testing.T, sub string) string {
	return signToken(t, jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

type authFixture struct {
	api      *fakeAPI
	kv       storage.KV
	sessions *session.Store
	states   *appctx.Store
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	kv := storage.NewMemory()
	t.Cleanup(func() { _ = kv.Close() })

	api := newFakeAPI()
	sessions := session.NewStore(kv, nil, logger.Nop())
	states := appctx.NewStore(kv, logger.Nop())
	return &authFixture{
		api:      api,
		kv:       kv,
		sessions: sessions,
		states:   states,
		svc:      NewAuthService(api, sessions, states, appctx.DefaultState(), logger.Nop()),
	}
}
