package appserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type WebUIConfig struct {
	Mode        string
	DevProxyURL string
	DistDir     string
}

type Deps struct {
	API   http.Handler
	WebUI WebUIConfig
}

// Server is the front door: task API routes go to the API handler, everything
// else to the configured web UI.
type Server struct {
	api   http.Handler
	webui http.Handler
}

func NewServer(deps Deps) (*Server, error) {
	if deps.API == nil {
		return nil, errors.New("api handler is required")
	}
	webui, err := newWebUIHandler(deps.WebUI)
	if err != nil {
		return nil, err
	}
	return &Server{api: deps.API, webui: webui}, nil
}

func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveHTTP)
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		s.api.ServeHTTP(w, r)
		return
	}
	s.webui.ServeHTTP(w, r)
}

func isAPIPath(p string) bool {
	switch {
	case p == "/tasks" || strings.HasPrefix(p, "/tasks/"):
		return true
	case p == "/healthz" || p == "/ws":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func routeError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
