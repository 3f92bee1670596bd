package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) authedGet(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(e.signIn(t, "user-1"))
	return e.do(req)
}

func TestCatalogRoutes_RequireSession(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{
		"/api/v1/movie/trending",
		"/api/v1/tv/1399/details",
		"/api/v1/search/movie/alien",
		"/api/v1/search/history",
	} {
		w := env.do(httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestCatalogHandler_Trending(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("Fetch", mock.Anything, "/trending/movie/day", url.Values(nil)).
		Return([]byte(`{"results":[{"id":550,"title":"Fight Club"}]}`), nil)

	w := env.authedGet(t, "/api/v1/movie/trending")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"content":{"id":550,"title":"Fight Club"}}`, w.Body.String())
}

func TestCatalogHandler_Trailers(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("Fetch", mock.Anything, "/tv/1399/videos", url.Values(nil)).
		Return([]byte(`{"id":1399,"results":[{"key":"abc"}]}`), nil)

	w := env.authedGet(t, "/api/v1/tv/1399/trailers")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"trailers":[{"key":"abc"}]}`, w.Body.String())
}

func TestCatalogHandler_Similar(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("Fetch", mock.Anything, "/movie/550/similar", url.Values(nil)).
		Return([]byte(`{"page":1,"results":[{"id":807}]}`), nil)

	w := env.authedGet(t, "/api/v1/movie/550/similar")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"similar":[{"id":807}]}`, w.Body.String())
}

func TestCatalogHandler_Details(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.On("Fetch", mock.Anything, "/movie/550", url.Values(nil)).
			Return([]byte(`{"id":550,"runtime":139}`), nil)

		w := env.authedGet(t, "/api/v1/movie/550/details")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"content":{"id":550,"runtime":139}}`, w.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.On("Fetch", mock.Anything, "/movie/999999", url.Values(nil)).
			Return(nil, errors.NewNotFoundError("The resource you requested could not be found."))

		w := env.authedGet(t, "/api/v1/movie/999999/details")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Upstream", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.On("Fetch", mock.Anything, "/movie/550", url.Values(nil)).Return(nil, fmt.Errorf("timeout"))

		w := env.authedGet(t, "/api/v1/movie/550/details")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.authedGet(t, "/api/v1/movie/abc/details")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", decode(t, w)["error"])
	})
}

func TestCatalogHandler_ByCategory(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("Fetch", mock.Anything, "/tv/on_the_air", url.Values(nil)).
		Return([]byte(`{"results":[{"id":1}]}`), nil)

	w := env.authedGet(t, "/api/v1/tv/category/on_the_air")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"content":[{"id":1}]}`, w.Body.String())

	w = env.authedGet(t, "/api/v1/tv/category/upcoming")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_Search(t *testing.T) {
	env := newTestEnv(t)
	query := url.Values{
		"query":         {"brad pitt"},
		"include_adult": {"false"},
		"language":      {"en-US"},
		"page":          {"1"},
	}
	env.provider.On("Fetch", mock.Anything, "/search/person", query).
		Return([]byte(`{"results":[{"id":287,"name":"Brad Pitt","profile_path":"/brad.jpg"}]}`), nil)
	env.history.On("Add", mock.Anything, mock.MatchedBy(func(h *ports.SearchHistoryData) bool {
		return h.UserID == "user-1" && h.MediaID == 287 && h.Title == "Brad Pitt" &&
			h.Image == "/brad.jpg" && h.SearchType == "person"
	})).Return(nil)

	w := env.authedGet(t, "/api/v1/search/person/brad%20pitt")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"content":[{"id":287,"name":"Brad Pitt","profile_path":"/brad.jpg"}]}`, w.Body.String())
}

func TestSearchHandler_NoResults(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("Fetch", mock.Anything, "/search/tv", mock.Anything).Return([]byte(`{"results":[]}`), nil)

	w := env.authedGet(t, "/api/v1/search/tv/zzzz")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchHandler_History(t *testing.T) {
	env := newTestEnv(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.history.On("ListByUser", mock.Anything, "user-1").Return([]*ports.SearchHistoryData{
		{ID: 1, UserID: "user-1", MediaID: 550, Title: "Fight Club", Image: "/fc.jpg", SearchType: "movie", CreatedAt: created},
	}, nil)

	w := env.authedGet(t, "/api/v1/search/history")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"content":[{"id":550,"title":"Fight Club","image":"/fc.jpg","searchType":"movie","createdAt":"2024-05-01T12:00:00Z"}]}`, w.Body.String())
}

func TestSearchHandler_EmptyHistory(t *testing.T) {
	env := newTestEnv(t)
	env.history.On("ListByUser", mock.Anything, "user-1").Return([]*ports.SearchHistoryData{}, nil)

	w := env.authedGet(t, "/api/v1/search/history")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"content":[]}`, w.Body.String())
}

func TestSearchHandler_RemoveFromHistory(t *testing.T) {
	env := newTestEnv(t)
	env.history.On("DeleteByMediaID", mock.Anything, "user-1", int64(550)).Return(int64(1), nil)
	cookie := env.signIn(t, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/search/history/550", nil)
	req.AddCookie(cookie)
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item removed from search history", decode(t, w)["message"])

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/search/history/-1", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
