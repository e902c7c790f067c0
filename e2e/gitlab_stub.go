package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// stubRoute is a canned response for one method+path pair. Paths are matched
// against r.URL.EscapedPath so percent-encoded project refs stay encoded.
type stubRoute struct {
	Status int
	Body   interface{}
	// Check, when set, inspects the incoming request before the response is
	// written. Panics inside Check surface as test failures.
	Check func(r *http.Request)
	// Respond, when set, picks status and body per request. Used for
	// paginated endpoints and first-call-fails sequences.
	Respond func(r *http.Request) (int, interface{})
}

// gitlabStub is a fake GitLab v4 endpoint backed by httptest. It records every
// request it serves so scenarios can assert call order and counts.
type gitlabStub struct {
	mu       sync.Mutex
	routes   map[string]stubRoute
	requests []string
	server   *httptest.Server
}

func newGitLabStub() *gitlabStub {
	stub := &gitlabStub{
		routes: make(map[string]stubRoute),
	}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	return stub
}

func (s *gitlabStub) Close()      { s.server.Close() }
func (s *gitlabStub) URL() string { return s.server.URL }

// On registers a response for a method and escaped path
func (s *gitlabStub) On(method, path string, status int, body interface{}) {
	s.OnChecked(method, path, status, body, nil)
}

// OnChecked registers a response with a request inspector
func (s *gitlabStub) OnChecked(method, path string, status int, body interface{}, check func(r *http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = stubRoute{Status: status, Body: body, Check: check}
}

// OnFunc registers a dynamic responder for a method and escaped path
func (s *gitlabStub) OnFunc(method, path string, respond func(r *http.Request) (int, interface{})) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = stubRoute{Respond: respond}
}

// Requests returns the "METHOD path?query" lines served so far
func (s *gitlabStub) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *gitlabStub) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.EscapedPath()

	line := key
	if r.URL.RawQuery != "" {
		line += "?" + r.URL.RawQuery
	}

	s.mu.Lock()
	s.requests = append(s.requests, line)
	route, ok := s.routes[key]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"message":"404 Not Found: %s"}`, key)
		return
	}

	if route.Check != nil {
		route.Check(r)
	}

	status, body := route.Status, route.Body
	if route.Respond != nil {
		status, body = route.Respond(r)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
