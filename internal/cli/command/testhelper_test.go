package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// mockServer is a Tankmate API stand-in keyed by "METHOD /path".
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// newMockServer creates a mock API closed at the end of the test.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		h, ok := m.handlers[r.Method+" "+r.URL.EscapedPath()]
		m.mu.Unlock()

		if !ok {
			errorResponse(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		h(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for METHOD and a path below /api/v1.
func (m *mockServer) handle(method, path string, h http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method+" /api/v1"+path] = h
}

// calls returns the requests made to METHOD /api/v1<path>.
func (m *mockServer) calls(method, path string) []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedRequest
	for _, r := range m.requests {
		if r.Method == method && r.Path == "/api/v1"+path {
			out = append(out, r)
		}
	}
	return out
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// testEnv runs the CLI against a mock server with an isolated home, config
// file and local store.
type testEnv struct {
	t      *testing.T
	server *mockServer
	dir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{"TANKMATE_CONFIG", "TANKMATE_API_URL", "TANKMATE_OUTPUT", "TANKMATE_PASSWORD", "TANKMATE_TANK", "TANKMATE_EMAIL"} {
		// Setenv restores the original value after the test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return &testEnv{t: t, server: newMockServer(t), dir: dir}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes one CLI invocation with stdin as its input.
func (e *testEnv) run(stdin string, args ...string) runResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	full := []string{
		"tankmate-cli",
		"--config", filepath.Join(e.dir, "config.yaml"),
		"--data-dir", filepath.Join(e.dir, "data"),
		"--api-url", e.server.URL,
		"--log-level", "error",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := app.RunContext(ctx, append(full, args...))
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// login signs in as user id u1 with a one hour token.
func (e *testEnv) login() string {
	e.t.Helper()
	token := signToken(e.t, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	e.server.handle(http.MethodPost, "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{
			"token":  token,
			"userId": "u1",
			"email":  "reef@example.com",
			"name":   "Reef Keeper",
		})
	})
	res := e.run("", "login", "--email", "reef@example.com", "--password", "Secret123")
	if res.err != nil {
		e.t.Fatalf("login: %v (stderr %q)", res.err, res.stderr)
	}
	return token
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
