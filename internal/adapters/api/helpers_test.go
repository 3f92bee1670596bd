package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalogapi.app/internal/adapters/infrastructure"
	"catalogapi.app/internal/core/account"
	"catalogapi.app/internal/core/catalog"
	"catalogapi.app/internal/mocks"
	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testClientURL = "http://localhost:5173"
	testSecret    = "test-secret"
)

type testEnv struct {
	server   *HTTPServerAdapter
	router   *gin.Engine
	users    *mocks.UserRepository
	hasher   *mocks.PasswordHasher
	notifier *mocks.AccountNotifier
	history  *mocks.SearchHistoryRepository
	provider *mocks.CatalogProvider
	tokens   *infrastructure.JWTTokenIssuer
}

type envOption func(opts *ServerOptions)

func withConfig(mutate func(cfg *ServerConfig)) envOption {
	return func(opts *ServerOptions) { mutate(&opts.Config) }
}

func newTestEnv(t *testing.T, options ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    mocks.NewUserRepository(t),
		hasher:   mocks.NewPasswordHasher(t),
		notifier: mocks.NewAccountNotifier(t),
		history:  mocks.NewSearchHistoryRepository(t),
		provider: mocks.NewCatalogProvider(t),
	}

	tokens, err := infrastructure.NewJWTTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	env.tokens = tokens

	accounts, err := account.NewUseCase(account.UseCaseDependencies{
		Users:         env.users,
		Hasher:        env.hasher,
		Notifier:      env.notifier,
		Logger:        mocks.NewLogger(),
		ClientBaseURL: testClientURL,
	})
	require.NoError(t, err)

	catalogUseCase, err := catalog.NewUseCase(catalog.UseCaseDependencies{
		Provider: env.provider,
		History:  env.history,
		Logger:   mocks.NewLogger(),
	})
	require.NoError(t, err)

	opts := ServerOptions{
		Config: ServerConfig{
			AllowedOrigins: []string{testClientURL},
			CookieName:     "jwt-netflix",
			CookieTTL:      time.Hour,
		},
		AccountUseCase: accounts,
		CatalogUseCase: catalogUseCase,
		TokenIssuer:    tokens,
		Logger:         mocks.NewLogger(),
	}
	for _, option := range options {
		option(&opts)
	}

	server, err := NewHTTPServerAdapter(opts)
	require.NoError(t, err)
	env.server = server
	env.router = server.GetRouter()
	return env
}

// signIn returns a session cookie for userID and makes the user resolvable
func (e *testEnv) signIn(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, err := e.tokens.Issue(userID)
	require.NoError(t, err)

	e.users.On("FindByID", mock.Anything, userID).Return(&ports.UserData{
		ID:         userID,
		Username:   "ada",
		Email:      "ada@example.com",
		Image:      "/avatar1.png",
		IsVerified: true,
	}, nil)
	return &http.Cookie{Name: "jwt-netflix", Value: token}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func notFound() error { return errors.NewNotFoundError("not found") }

type fakeHealth map[string]ports.HealthStatus

func (f fakeHealth) CheckAll(context.Context) map[string]ports.HealthStatus { return f }

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	observed []observation
}

func (f *fakeMetrics) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method, route, status})
}

func (f *fakeMetrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
}
