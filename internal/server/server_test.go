package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polycache/polycache/internal/config"
	"github.com/polycache/polycache/internal/persist"
	"github.com/polycache/polycache/pkg/cache"
)

func newTestServer(t *testing.T, policy cache.Policy, capacity int) *Server {
	t.Helper()

	backend, err := persist.NewCached[string, string](policy, capacity, persist.NewMockStore[string, string](), zerolog.Nop())
	require.NoError(t, err)

	cfg := config.ServerConfig{
		ListenAddr:      "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
		PageSize:        10,
	}
	return New(cfg, policy, backend, zerolog.Nop())
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, cache.LRU, 4)
	rec := doRequest(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetThenGet(t *testing.T) {
	s := newTestServer(t, cache.LRU, 4)
	h := s.Handler()

	rec := doRequest(t, h, http.MethodPut, "/cache/greeting", `{"value":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/cache/greeting", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entry entryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "greeting", entry.Key)
	assert.Equal(t, "hello", entry.Value)
}

func TestGetMissing(t *testing.T) {
	s := newTestServer(t, cache.LRU, 4)
	rec := doRequest(t, s.Handler(), http.MethodGet, "/cache/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "key not found", resp.Error)
}

func TestSetInvalidBody(t *testing.T) {
	s := newTestServer(t, cache.LRU, 4)
	rec := doRequest(t, s.Handler(), http.MethodPut, "/cache/k", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	s := newTestServer(t, cache.LRU, 4)
	h := s.Handler()

	doRequest(t, h, http.MethodPut, "/cache/k", `{"value":"v"}`)

	rec := doRequest(t, h, http.MethodDelete, "/cache/k", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/cache/k", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvictionVisibleOverHTTP(t *testing.T) {
	s := newTestServer(t, cache.FIFO, 2)
	h := s.Handler()

	doRequest(t, h, http.MethodPut, "/cache/1", `{"value":"A"}`)
	doRequest(t, h, http.MethodPut, "/cache/2", `{"value":"B"}`)
	doRequest(t, h, http.MethodPut, "/cache/3", `{"value":"C"}`)

	rec := doRequest(t, h, http.MethodGet, "/cache/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "first insertion evicted by FIFO policy")

	rec = doRequest(t, h, http.MethodGet, "/cache/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStats(t *testing.T) {
	s := newTestServer(t, cache.FIFO, 2)
	h := s.Handler()

	doRequest(t, h, http.MethodPut, "/cache/1", `{"value":"A"}`)
	doRequest(t, h, http.MethodPut, "/cache/2", `{"value":"B"}`)
	doRequest(t, h, http.MethodPut, "/cache/3", `{"value":"C"}`)
	doRequest(t, h, http.MethodGet, "/cache/2", "")  // hit
	doRequest(t, h, http.MethodGet, "/cache/1", "")  // miss (evicted)
	doRequest(t, h, http.MethodGet, "/cache/no", "") // miss

	rec := doRequest(t, h, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "fifo", stats.Policy)
	assert.Equal(t, 2, stats.Capacity)
	assert.Equal(t, 2, stats.Len)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, uint64(1), stats.Evictions)
}

func TestKeysPagination(t *testing.T) {
	s := newTestServer(t, cache.FIFO, 5)
	h := s.Handler()

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		doRequest(t, h, http.MethodPut, "/cache/"+k, `{"value":"v"}`)
	}

	rec := doRequest(t, h, http.MethodGet, "/keys?page=1&page_size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Page       int      `json:"page"`
		PageSize   int      `json:"page_size"`
		Data       []string `json:"data"`
		NextPage   *int     `json:"next_page"`
		TotalPages int      `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, []string{"a", "b"}, page.Data, "keys arrive in eviction order")
	assert.Equal(t, 3, page.TotalPages)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)

	rec = doRequest(t, h, http.MethodGet, "/keys?page=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/keys?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
