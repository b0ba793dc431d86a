package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/polycache/polycache/pkg/pagination"
)

// entryResponse is the JSON body for a single cache entry.
type entryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// setRequest is the JSON body accepted by PUT /cache/{key}.
type setRequest struct {
	Value string `json:"value"`
}

// statsResponse is the JSON body for GET /stats.
type statsResponse struct {
	Policy    string `json:"policy"`
	Capacity  int    `json:"capacity"`
	Len       int    `json:"len"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the routed HTTP handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /cache/{key}", s.handleGet)
	mux.HandleFunc("PUT /cache/{key}", s.handleSet)
	mux.HandleFunc("DELETE /cache/{key}", s.handleDelete)
	mux.HandleFunc("GET /keys", s.handleKeys)
	mux.HandleFunc("GET /stats", s.handleStats)

	return s.withLogging(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, ok := s.cache.Get(key)
	if !ok {
		s.misses.Add(1)
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "key not found"})
		return
	}

	s.hits.Add(1)
	writeJSON(w, http.StatusOK, entryResponse{Key: key, Value: value})
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	s.cache.Set(key, req.Value)
	writeJSON(w, http.StatusOK, entryResponse{Key: key, Value: req.Value})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.cache.Remove(r.PathValue("key"))
	w.WriteHeader(http.StatusNoContent)
}

// handleKeys lists cached keys in eviction order with hypermedia pagination.
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	size, err := queryInt(r, "page_size", s.pageSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	hp, err := pagination.New(s.cache.Keys()).HyperPage(page, size)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hp)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Policy:    s.policy.String(),
		Capacity:  s.cache.Cap(),
		Len:       s.cache.Len(),
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.cache.Evictions(),
	})
}

var errBadQueryParam = errors.New("query parameter must be an integer")

// queryInt reads an integer query parameter, falling back to a default when
// the parameter is absent.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(errBadQueryParam, err)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
