package engagement

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/raoc-coder/eventraisehub/pkg/client"
)

// fakeServer serves a scripted subset of the REST API and counts hits per
// route pattern.
type fakeServer struct {
	*httptest.Server
	mux *http.ServeMux

	mu   sync.Mutex
	hits map[string]int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{mux: http.NewServeMux(), hits: map[string]int{}}
	fs.Server = httptest.NewServer(fs.mux)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) handle(pattern string, h http.HandlerFunc) {
	fs.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.hits[pattern]++
		fs.mu.Unlock()
		h(w, r)
	})
}

func (fs *fakeServer) count(pattern string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[pattern]
}

func (fs *fakeServer) client(opts ...client.Option) *client.Client {
	return client.New(fs.URL, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respond(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, status, v) }
}

func apiError(status int, msg string) http.HandlerFunc {
	return respond(status, map[string]string{"error": msg})
}

// recorder is a Notifier that keeps every notice.
type recorder struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, msg)
}
