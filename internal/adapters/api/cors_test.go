package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
	fields [][]ports.Field
}

func (l *recordingLogger) Debug(string, ...ports.Field) {}
func (l *recordingLogger) Info(string, ...ports.Field)  {}
func (l *recordingLogger) Warn(string, ...ports.Field)  {}
func (l *recordingLogger) Error(msg string, fields ...ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
	l.fields = append(l.fields, fields)
}

func TestOriginGate_Check(t *testing.T) {
	gate := NewOriginGate([]string{"https://app.example.com", "https://app.example.com/"}, nil)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"", true},
		{"https://app.example.com", true},
		{"https://app.example.com/", true},
		{"https://app.example.com//", false},
		{"https://evil.example.com", false},
		{"http://app.example.com", false},
		{"https://APP.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			err := gate.Check(tt.origin)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsForbiddenError(err))
			assert.Contains(t, err.Error(), "Not allowed by CORS")
		})
	}
}

func TestOriginGate_AllowlistEntryWithTrailingSlash(t *testing.T) {
	gate := NewOriginGate([]string{"http://localhost:5173/"}, nil)
	assert.NoError(t, gate.Check("http://localhost:5173"))
}

func TestOriginGate_LogsRejection(t *testing.T) {
	logger := &recordingLogger{}
	gate := NewOriginGate([]string{testClientURL}, logger)

	require.Error(t, gate.Check("https://evil.example.com"))

	require.Len(t, logger.errors, 1)
	assert.Equal(t, "CORS blocked origin", logger.errors[0])
	assert.Equal(t, ports.F("origin", "https://evil.example.com"), logger.fields[0][0])
	assert.Equal(t, ports.F("allowedOrigins", []string{testClientURL}), logger.fields[0][1])
}

func TestOriginGate_AllowedIsACopy(t *testing.T) {
	source := []string{testClientURL}
	gate := NewOriginGate(source, nil)
	source[0] = "https://changed.example.com"

	allowed := gate.Allowed()
	allowed[0] = "https://other.example.com"

	assert.Equal(t, []string{testClientURL}, gate.Allowed())
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/logout", nil)
	req.Header.Set("Origin", testClientURL)
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testClientURL, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_NoOrigin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodPost, "/api/v1/account/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_RejectedOrigin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/logout", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := env.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Not allowed by CORS"}`, w.Body.String())
	assert.Nil(t, findCookie(w, "jwt-netflix"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/account/login", nil)
	req.Header.Set("Origin", testClientURL+"/")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testClientURL+"/", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPatch, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_PreflightUnknownMethod(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/account/login", nil)
	req.Header.Set("Origin", testClientURL)
	req.Header.Set("Access-Control-Request-Method", "TRACE")
	w := env.do(req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_PreflightRejectedOrigin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/account/login", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := env.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
